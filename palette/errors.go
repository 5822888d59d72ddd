package palette

import (
	"fmt"
	"strings"
)

// ErrInvalidFormat is the root of every import failure
var ErrInvalidFormat = fmt.Errorf("invalid palette format")

// ErrNoBlobStore is returned by New when no storage backend is supplied
var ErrNoBlobStore = fmt.Errorf("palette store requires a blob store")

// FormatError describes why an import document was refused
type FormatError struct {
	ErrorName        string   `json:"errorName"`
	Description      string   `json:"description"`
	PossibleSolution string   `json:"possibleSolution"`
	Details          []string `json:"details,omitempty"`
}

func (e *FormatError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.ErrorName, e.Description)
	}
	return fmt.Sprintf("%s: %s (%s)", e.ErrorName, e.Description, strings.Join(e.Details, "; "))
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

func unparseableJSON(err error) *FormatError {
	return &FormatError{
		ErrorName:        "Invalid JSON Format",
		Description:      err.Error(),
		PossibleSolution: "Double check your JSON formatting",
	}
}

func schemaViolation(details []string) *FormatError {
	return &FormatError{
		ErrorName:        "Invalid Palette Format",
		Description:      "document does not describe a palette",
		PossibleSolution: "Provide an object with palette.name and a palette.baseColors array",
		Details:          details,
	}
}

func duplicateColorID(id string) *FormatError {
	return &FormatError{
		ErrorName:        "Invalid Palette Format",
		Description:      fmt.Sprintf("base color id %q appears more than once", id),
		PossibleSolution: "Give every base color a unique id",
	}
}
