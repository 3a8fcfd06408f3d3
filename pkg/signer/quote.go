package signer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Quote percent-encodes v per RFC 3986. Only ALPHA, DIGIT and "-_.~" are
// left unescaped; a space becomes %20 and a literal "+" becomes %2B.
// Non-string values are converted to text first (see Text).
func Quote(v any) string {
	return strings.ReplaceAll(url.QueryEscape(Text(v)), "+", "%20")
}

// Unquote reverses Quote.
func Unquote(s string) (string, error) {
	return url.PathUnescape(s)
}

// Text returns the textual form of a parameter value. Byte slices are taken
// as UTF-8 text and nil is the empty string. Bools render as "true" and
// "false", lower case.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
