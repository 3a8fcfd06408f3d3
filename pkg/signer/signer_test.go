package signer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"opensearch/pkg/core"
)

const (
	testSecret    = "testsecret"
	testSignature = "/GWWQkztlp/9Qg7rry2DuCSfKUQ="
	testCanonical = "AccessKeyId=testid&SignatureMethod=HMAC-SHA1&SignatureNonce=14053016951271226&SignatureVersion=1.0&Timestamp=2014-07-14T01%3A34%3A55Z&Version=v2&fetch_fields=title%3Bgmt_modified&format=json&index_name=ut_3885312&query=config%3Dformat%3Ajson%2Cstart%3A0%2Chit%3A20%26%26query%3Ddefault%3A%27%E7%9A%84%27"
)

func testPublicParams() core.Params {
	return core.Params{
		"Version":          "v2",
		"AccessKeyId":      "testid",
		"SignatureMethod":  "HMAC-SHA1",
		"SignatureVersion": "1.0",
		"SignatureNonce":   "14053016951271226",
		"Timestamp":        "2014-07-14T01:34:55Z",
	}
}

func testParams() core.Params {
	return core.Params{
		"query":        "config=format:json,start:0,hit:20&&query=default:'的'",
		"index_name":   "ut_3885312",
		"format":       "json",
		"fetch_fields": "title;gmt_modified",
	}
}

func TestCanonicalize(t *testing.T) {
	query := BuildQuery(testParams(), testPublicParams())
	assert.Equal(t, testCanonical, Canonicalize(query))
}

func TestCanonicalize_OrderIndependent(t *testing.T) {
	a := core.Params{}
	b := core.Params{}
	keys := []string{"b", "a", "C", "_x", "z", "A"}
	for i, k := range keys {
		a[k] = i
	}
	for i := len(keys) - 1; i >= 0; i-- {
		b[keys[i]] = i
	}

	assert.Equal(t, Canonicalize(a), Canonicalize(b))
	assert.Equal(t, "A=5&C=2&_x=3&a=1&b=0&z=4", Canonicalize(a))
}

func TestCanonicalize_Empty(t *testing.T) {
	assert.Equal(t, "", Canonicalize(core.Params{}))
	assert.Equal(t, "", Canonicalize(nil))
}

func TestBuildQuery_DefaultsFormat(t *testing.T) {
	params := core.Params{"query": "x"}
	query := BuildQuery(params, testPublicParams())

	assert.Equal(t, "json", query["format"])
	assert.NotContains(t, params, "format")
}

func TestBuildQuery_CallerFormatWins(t *testing.T) {
	query := BuildQuery(core.Params{"format": "xml"}, core.Params{"format": "fulljson"})
	assert.Equal(t, "xml", query["format"])
}

func TestBuildQuery_DefaultFormatOverridesPublic(t *testing.T) {
	query := BuildQuery(nil, core.Params{"format": "xml"})
	assert.Equal(t, "json", query["format"])
}

func TestBuildQuery_CallerOverridesPublic(t *testing.T) {
	public := testPublicParams()
	query := BuildQuery(core.Params{"Version": "v3"}, public)

	assert.Equal(t, "v3", query["Version"])
	assert.Equal(t, "v2", public["Version"])
}

func TestStringToSign(t *testing.T) {
	want := "GET&%2F&AccessKeyId%3Dtestid%26SignatureMethod%3DHMAC-SHA1%26SignatureNonce%3D14053016951271226%26SignatureVersion%3D1.0%26Timestamp%3D2014-07-14T01%253A34%253A55Z%26Version%3Dv2%26fetch_fields%3Dtitle%253Bgmt_modified%26format%3Djson%26index_name%3Dut_3885312%26query%3Dconfig%253Dformat%253Ajson%252Cstart%253A0%252Chit%253A20%2526%2526query%253Ddefault%253A%2527%25E7%259A%2584%2527"

	assert.Equal(t, want, StringToSign("get", testCanonical))
	assert.Equal(t, want, StringToSign("GET", testCanonical))
}

func TestSign(t *testing.T) {
	assert.Equal(t, testSignature, Sign(testSecret, StringToSign("GET", testCanonical)))
}

func TestSign_MethodMatters(t *testing.T) {
	assert.NotEqual(t, Sign(testSecret, StringToSign("GET", testCanonical)), Sign(testSecret, StringToSign("POST", testCanonical)))
}

func TestSign_PostWithSignMode(t *testing.T) {
	query := BuildQuery(testParams(), testPublicParams())
	query["sign_mode"] = 1
	canonical := Canonicalize(query)

	assert.True(t, strings.HasSuffix(canonical, "&sign_mode=1"))
	assert.Equal(t, "Hki74WNQccHqz/b5eVc5cUeCK7Q=", Sign(testSecret, StringToSign("POST", canonical)))
}

func TestAssembleURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{"no_trailing_slash", "http://$host"},
		{"trailing_slash", "http://$host/"},
		{"many_trailing_slashes", "http://$host///"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssembleURL(tt.baseURL, "/search", "a=1", testSignature)
			assert.Equal(t, "http://$host/search?a=1&Signature=%2FGWWQkztlp%2F9Qg7rry2DuCSfKUQ%3D", got)
		})
	}
}

func TestSignURL(t *testing.T) {
	got := SignURL("GET", "/search", "http://$host", testSecret, testParams(), testPublicParams())
	want := "http://$host/search?" + testCanonical + "&Signature=%2FGWWQkztlp%2F9Qg7rry2DuCSfKUQ%3D"

	assert.Equal(t, want, got)
}

func TestSignURL_UsesFixedResource(t *testing.T) {
	search := SignURL("GET", "/search", "http://$host", testSecret, testParams(), testPublicParams())
	suggest := SignURL("GET", "/suggest", "http://$host", testSecret, testParams(), testPublicParams())

	sig := func(u string) string { return u[strings.LastIndex(u, "&Signature="):] }
	assert.Equal(t, sig(search), sig(suggest))
}
