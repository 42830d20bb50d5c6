package scrape

import (
	"errors"
	"fmt"
)

// ErrPageNotFound means weather.com served its own not-found page for the
// requested place ID. Callers should not retry.
var ErrPageNotFound = errors.New("weather.com returned its not-found page")

// ExtractionKind distinguishes the ways pulling a field out of a page can fail.
type ExtractionKind string

const (
	// MissingField: a required selector matched nothing, or matched fewer
	// nodes than the requested index. Usually a site markup change.
	MissingField ExtractionKind = "missing_field"

	// StructuralMismatch: parallel node lists that are zipped into records
	// came back with different lengths.
	StructuralMismatch ExtractionKind = "structural_mismatch"
)

// ExtractionError is a typed failure from the extraction engine. Selector
// carries the CSS selector involved, for diagnostics.
type ExtractionError struct {
	Kind     ExtractionKind
	Selector string
	Detail   string
}

func (e *ExtractionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("extraction failed (%s): %s: selector %q", e.Kind, e.Detail, e.Selector)
	}
	return fmt.Sprintf("extraction failed (%s): selector %q", e.Kind, e.Selector)
}

func missingField(selector string) error {
	return &ExtractionError{Kind: MissingField, Selector: selector}
}

func missingFieldDetail(selector, detail string) error {
	return &ExtractionError{Kind: MissingField, Selector: selector, Detail: detail}
}

func structuralMismatch(selector, detail string) error {
	return &ExtractionError{Kind: StructuralMismatch, Selector: selector, Detail: detail}
}
