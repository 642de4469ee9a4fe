package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/dmitrijs2005/ignitegym/internal/client/apperr"
)

// printFieldErrors writes validation messages one per line, sorted by field.
// It reports whether err was a validation failure.
func printFieldErrors(w io.Writer, err error) bool {
	e := apperr.Classify(err, "")
	if e == nil || e.Kind != apperr.KindValidation {
		return false
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %s\n", name, e.Fields[name])
	}
	return true
}
