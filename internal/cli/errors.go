package cli

import (
	"errors"

	"github.com/me/seekplan/pkg/model"
)

// FormatError renders err as "<kind>: <message>" for the terminal.
func FormatError(err error) string {
	msg := err.Error()
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	return model.ErrorKind(err) + ": " + msg
}
