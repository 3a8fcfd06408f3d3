package opensearch

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Command is the action applied to an uploaded document.
type Command string

// Document commands accepted by the upload endpoint.
const (
	CmdAdd    Command = "add"
	CmdUpdate Command = "update"
	CmdDelete Command = "delete"
)

// Item is one document operation of an upload.
type Item struct {
	Cmd Command `json:"cmd" validate:"required,oneof=add update delete"`
	// Timestamp orders operations on the same document, in milliseconds.
	Timestamp int64          `json:"timestamp,omitempty" validate:"min=0"`
	Fields    map[string]any `json:"fields" validate:"required"`
}

var validate = validator.New()

func validateItems(items []Item) error {
	if len(items) == 0 {
		return errors.New("no items")
	}
	for i := range items {
		if err := validate.Struct(&items[i]); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}
