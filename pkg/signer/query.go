package signer

import (
	"maps"
	"slices"
	"strings"

	"opensearch/pkg/core"
)

// DefaultFormat is added to every query that does not name a format.
const DefaultFormat = "json"

// BuildQuery merges caller params over the public params. Caller params win
// on collision and "format" defaults to "json" when the caller omits it.
// Neither input is modified.
func BuildQuery(params, public core.Params) core.Params {
	query := public.Clone()
	maps.Copy(query, params)
	if _, ok := params["format"]; !ok {
		query["format"] = DefaultFormat
	}
	return query
}

// Canonicalize renders query as "k=v" pairs sorted by raw key and joined
// with "&". Keys and values are quoted independently.
func Canonicalize(query core.Params) string {
	var b strings.Builder
	for i, k := range slices.Sorted(maps.Keys(query)) {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(Quote(k))
		b.WriteByte('=')
		b.WriteString(Quote(query[k]))
	}
	return b.String()
}
