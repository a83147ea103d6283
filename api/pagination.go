package api

import (
	"net/http"
	"strconv"

	"github.com/rosterhq/team-registry-backend/errs"
)

const maxPageSize = 100

// parsePagination enforces the caller-facing contract: offset >= 0 and
// limit <= 100. The repository applies the values verbatim.
func parsePagination(r *http.Request) (offset, limit int, err error) {
	offset, limit = 0, maxPageSize

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, errs.NewBadRequest("offset must be a non-negative integer")
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxPageSize {
			return 0, 0, errs.NewBadRequest("limit must be between 1 and 100")
		}
	}
	return offset, limit, nil
}
