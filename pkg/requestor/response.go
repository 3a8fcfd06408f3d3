package requestor

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/bytedance/sonic"

	"opensearch/internal/transport"
	"opensearch/pkg/core"
)

// ParseResponse decodes a raw response and maps failures to typed errors.
// The checks run in order: the body must be a UTF-8 JSON object, the HTTP
// status must be in [200, 400), and the logical status must be "OK".
// Only the last entry of "errors" is reported.
func ParseResponse(raw *transport.Response) (core.Response, error) {
	if raw == nil {
		return nil, core.NewAPIError("nil response")
	}

	var payload core.Response
	if !utf8.Valid(raw.Body) {
		return nil, core.NewAPIError("unable to parse response format").WithStatus(raw.StatusCode)
	}
	if err := sonic.Unmarshal(raw.Body, &payload); err != nil || payload == nil {
		return nil, core.NewAPIError("unable to parse response format").WithStatus(raw.StatusCode)
	}

	if raw.StatusCode < 200 || raw.StatusCode >= 400 {
		return nil, core.NewAPIErrorf("request failed status: %d", raw.StatusCode).WithStatus(raw.StatusCode)
	}

	if !payload.OK() {
		return nil, mapServiceError(payload).WithStatus(raw.StatusCode)
	}

	return payload, nil
}

func mapServiceError(payload core.Response) *core.APIError {
	var code any
	var message string
	if last, ok := payload.LastError(); ok {
		code, message = last.Code, last.Message
	}

	codeText := formatCode(code)
	msg := formatErrorMessage(codeText, message)

	if n, ok := code.(float64); ok && n == math.Trunc(n) {
		return core.NewErrorWithCode(core.ErrorCode(n), codeText, msg)
	}

	apiErr := core.NewAPIError(msg)
	if code != nil {
		apiErr.Code = codeText
	}
	return apiErr
}

func formatErrorMessage(code, message string) string {
	return fmt.Sprintf("code:%s, message:%s", code, message)
}

func formatCode(code any) string {
	switch v := code.(type) {
	case nil:
		return "None"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
