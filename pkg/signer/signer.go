package signer

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"strings"

	"opensearch/pkg/core"
)

// CanonicalResource is the resource path covered by every signature.
// It is always "/" whatever endpoint the request targets.
const CanonicalResource = "/"

// StringToSign returns "METHOD&%2F&<quoted canonical query>".
func StringToSign(method, canonicalQuery string) string {
	return strings.ToUpper(method) + "&" + Quote(CanonicalResource) + "&" + Quote(canonicalQuery)
}

// Sign returns base64(HMAC-SHA1(secret + "&", stringToSign)).
func Sign(secret, stringToSign string) string {
	h := hmac.New(sha1.New, []byte(secret+"&"))
	h.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// AssembleURL joins the base URL (trailing slashes removed), endpoint,
// canonical query and quoted signature. Inputs are not validated.
func AssembleURL(baseURL, endpoint, canonicalQuery, signature string) string {
	return strings.TrimRight(baseURL, "/") + endpoint + "?" + canonicalQuery + "&Signature=" + Quote(signature)
}

// SignURL builds, signs and assembles the request URL in one call.
func SignURL(method, endpoint, baseURL, secret string, params, public core.Params) string {
	canonical := Canonicalize(BuildQuery(params, public))
	signature := Sign(secret, StringToSign(method, canonical))
	return AssembleURL(baseURL, endpoint, canonical, signature)
}
