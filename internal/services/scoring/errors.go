package scoring

import (
	"fmt"
	"strings"

	apperrors "fraudshield/internal/errors"
)

// SchemaError lists the required features a request failed to supply.
type SchemaError struct {
	Missing []string
	Invalid []string
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "non-numeric "+strings.Join(e.Invalid, ", "))
	}
	return fmt.Sprintf("%s: %s", apperrors.ErrSchemaMismatch.Message, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error {
	return apperrors.ErrSchemaMismatch
}
