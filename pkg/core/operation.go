package core

import "net/http"

// Operation represents a resource method of the search service.
type Operation int

// Operation constants define all supported service operations.
const (
	// OpSearch runs a search query against an application.
	OpSearch Operation = iota
	// OpSuggest fetches drop-down suggestions.
	OpSuggest
	// OpUploadData pushes documents into an application table.
	OpUploadData
	// OpListApps lists the applications of the account.
	OpListApps
	// OpGetApp fetches the status of an application.
	OpGetApp
	// OpCreateApp creates an application from a template.
	OpCreateApp
	// OpDeleteApp deletes an application.
	OpDeleteApp
	// OpRebuildIndex starts an index rebuild task.
	OpRebuildIndex
	// OpGetErrorLog fetches the error log of an application.
	OpGetErrorLog
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return [...]string{
		"SEARCH",
		"SUGGEST",
		"UPLOAD_DATA",
		"LIST_APPS",
		"GET_APP",
		"CREATE_APP",
		"DELETE_APP",
		"REBUILD_INDEX",
		"GET_ERROR_LOG",
	}[o]
}

// Method returns the HTTP method the operation is sent with.
func (o Operation) Method() string {
	switch o {
	case OpUploadData, OpCreateApp, OpDeleteApp:
		return http.MethodPost
	default:
		return http.MethodGet
	}
}
