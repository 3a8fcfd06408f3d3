package core

import (
	"maps"
	"net/http"
	"strings"
)

// Params holds the caller parameters of a request. Values must be scalars;
// nested groups are flattened by the caller before they reach the signer.
type Params map[string]any

// Clone returns a shallow copy of the params. A nil receiver yields an empty map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Request describes a single call against the search service.
type Request struct {
	Method   string `json:"method"`
	Endpoint string `json:"endpoint"`
	Params   Params `json:"params,omitempty"`
	// Body is sent verbatim as a form-urlencoded entity on POST. It is never signed.
	Body string `json:"body,omitempty"`
}

func NewRequest(method, endpoint string) *Request {
	return &Request{
		Method:   strings.ToUpper(method),
		Endpoint: endpoint,
		Params:   make(Params),
	}
}

func (r *Request) SetParam(key string, value any) *Request {
	if r.Params == nil {
		r.Params = make(Params)
	}
	r.Params[key] = value
	return r
}

func (r *Request) SetParams(params Params) *Request {
	if r.Params == nil {
		r.Params = make(Params)
	}
	maps.Copy(r.Params, params)
	return r
}

func (r *Request) SetBody(body string) *Request {
	r.Body = body
	return r
}

// IsSupportedMethod reports whether the service accepts the method.
func IsSupportedMethod(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodPost:
		return true
	default:
		return false
	}
}
