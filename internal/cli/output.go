package cli

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/itchyny/gojq"
)

var jsonAPI = sonic.Config{SortMapKeys: true}.Froze()

// writeJSON prints v, or each result of the jq expression applied to v,
// as one JSON document per result.
func writeJSON(w io.Writer, v any, expr string, compact bool) error {
	results, err := applyFilter(v, expr)
	if err != nil {
		return err
	}

	for _, result := range results {
		var data []byte
		if compact {
			data, err = jsonAPI.Marshal(result)
		} else {
			data, err = jsonAPI.MarshalIndent(result, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
	}
	return nil
}

func applyFilter(v any, expr string) ([]any, error) {
	if expr == "" {
		return []any{v}, nil
	}

	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, usageError{fmt.Errorf("invalid --jq expression: %w", err)}
	}

	var results []any
	iter := query.Run(v)
	for {
		result, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := result.(error); ok {
			return nil, fmt.Errorf("jq: %w", err)
		}
		results = append(results, result)
	}
	return results, nil
}
