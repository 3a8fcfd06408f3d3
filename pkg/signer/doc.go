// Package signer implements request signing for the search service API.
//
// A signed request is produced in four steps:
//   - BuildPublicParams: protocol parameters (version, key id, nonce, timestamp)
//   - BuildQuery and Canonicalize: merge caller params and render a sorted,
//     percent-encoded query string
//   - StringToSign and Sign: HMAC-SHA1 over "METHOD&%2F&<encoded query>"
//   - AssembleURL: base URL, endpoint, query and Signature joined together
//
// Example usage:
//
//	public := signer.BuildPublicParams("v2", "testid")
//	url := signer.SignURL("GET", "/search", baseURL, secret, core.Params{"query": q}, public.Params())
package signer
