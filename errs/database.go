package errs

import (
	"fmt"
	"net/http"
	"strings"
)

// NewNotFound reports a lookup by identifier that matched nothing.
func NewNotFound(entity, id string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s with id %s %w", entity, id, ErrNotFound),
	}
}

// NewNotFoundByName reports a lookup by exact name that matched nothing.
func NewNotFoundByName(entity, name string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s with name %s %w", entity, name, ErrNotFound),
	}
}

// NewNamesNotFound reports a bulk name resolution that matched fewer rows
// than requested; missing lists the unresolved names.
func NewNamesNotFound(entity string, missing []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("some %ss %w", strings.ToLower(entity), ErrNotFound),
		Details:    fmt.Sprintf("missing: %s", strings.Join(missing, ", ")),
	}
}

func NewConflict(entity, details string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", entity, ErrConflict),
		Details:    details,
	}
}

// FromDatabase translates a storage error into the domain taxonomy. Unique
// constraint violations become conflicts instead of leaking as raw driver
// errors; everything else is an internal database failure.
func FromDatabase(operation, entity string, cause error) *ApiErr {
	if cause != nil {
		errStr := cause.Error()
		switch {
		case strings.Contains(errStr, "duplicate key"),
			strings.Contains(errStr, "UNIQUE constraint failed"):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        fmt.Errorf("%s %w", entity, ErrConflict),
				Details:    fmt.Sprintf("%s already exists", entity),
				Cause:      cause,
			}
		case strings.Contains(errStr, "foreign key constraint"),
			strings.Contains(errStr, "FOREIGN KEY constraint failed"):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        fmt.Errorf("invalid reference in %s: %w", entity, ErrBadRequest),
				Details:    "the referenced resource does not exist or cannot be linked",
				Cause:      cause,
			}
		}
	}
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrInternal,
		Details:    fmt.Sprintf("failed to %s %s", operation, entity),
		Cause:      cause,
	}
}
