package handling

import (
	"net/http"
	"strconv"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/go-chi/chi/v5"
)

// PathID parses a positive integer route parameter.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, lib.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

// QueryBool reads a boolean query parameter, false when absent or malformed.
func QueryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
