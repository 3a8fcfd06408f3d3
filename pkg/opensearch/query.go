package opensearch

import (
	"strings"

	"opensearch/pkg/signer"
)

type queryKind int

const (
	queryText queryKind = iota
	queryClauses
)

// Query is a search query: either raw query text or a list of clauses.
// The zero value is an empty text query.
type Query struct {
	kind    queryKind
	text    string
	clauses []Clause
}

// Text returns a query sent as is.
func Text(text string) Query {
	return Query{kind: queryText, text: text}
}

// Clauses returns a query composed from clauses in the given order.
func Clauses(clauses ...Clause) Query {
	return Query{kind: queryClauses, clauses: clauses}
}

// String renders the query parameter value.
func (q Query) String() string {
	if q.kind == queryText {
		return q.text
	}
	return MakeQueryString(q.clauses...)
}

// KV is one key:value pair of a clause group.
type KV struct {
	Key   string
	Value any
}

// Pair returns a KV.
func Pair(key string, value any) KV {
	return KV{Key: key, Value: value}
}

// Clause is one name=value part of a composed query, such as
// query=default:'foo' or config=start:0,hit:20.
type Clause struct {
	Name  string
	text  string
	pairs []KV
	group bool
}

// Raw returns a clause with a literal value.
func Raw(name, text string) Clause {
	return Clause{Name: name, text: text}
}

// Group returns a clause whose value is key:value pairs joined by commas.
func Group(name string, pairs ...KV) Clause {
	return Clause{Name: name, pairs: pairs, group: true}
}

// Value renders the clause value. An empty group renders as "".
func (c Clause) Value() string {
	if !c.group {
		return c.text
	}
	parts := make([]string, 0, len(c.pairs))
	for _, kv := range c.pairs {
		parts = append(parts, kv.Key+":"+signer.Text(kv.Value))
	}
	return strings.Join(parts, ",")
}

// MakeQueryString joins clauses as name=value with "&&", skipping clauses
// with an empty value.
func MakeQueryString(clauses ...Clause) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		v := c.Value()
		if v == "" {
			continue
		}
		parts = append(parts, c.Name+"="+v)
	}
	return strings.Join(parts, "&&")
}
