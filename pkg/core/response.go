package core

import "fmt"

// StatusOK is the logical status of a successful response.
const StatusOK = "OK"

// Response is a decoded JSON object returned by the search service.
type Response map[string]any

// ErrorItem is a single entry of the "errors" list of a failed response.
type ErrorItem struct {
	Code    any    `json:"code"`
	Message string `json:"message"`
}

// Status returns the logical status field, or "" when absent or not a string.
func (r Response) Status() string {
	s, _ := r["status"].(string)
	return s
}

// OK reports whether the logical status is exactly "OK".
func (r Response) OK() bool {
	return r.Status() == StatusOK
}

// RequestID returns the request_id field when the service sent one.
func (r Response) RequestID() string {
	s, _ := r["request_id"].(string)
	return s
}

// Result returns the domain payload under "result".
func (r Response) Result() any {
	return r["result"]
}

// Errors returns the entries of the "errors" list in order, one item per
// entry. An entry that is not an object yields a zero ErrorItem.
func (r Response) Errors() []ErrorItem {
	list, ok := r["errors"].([]any)
	if !ok {
		return nil
	}
	items := make([]ErrorItem, 0, len(list))
	for _, raw := range list {
		items = append(items, newErrorItem(raw))
	}
	return items
}

// LastError returns the final entry of the "errors" list, whatever its
// shape. ok is false when the list is absent or empty.
func (r Response) LastError() (item ErrorItem, ok bool) {
	list, _ := r["errors"].([]any)
	if len(list) == 0 {
		return ErrorItem{}, false
	}
	return newErrorItem(list[len(list)-1]), true
}

func newErrorItem(raw any) ErrorItem {
	m, ok := raw.(map[string]any)
	if !ok {
		return ErrorItem{}
	}
	item := ErrorItem{Code: m["code"]}
	if msg, ok := m["message"]; ok && msg != nil {
		item.Message = fmt.Sprint(msg)
	}
	return item
}
