// Package bind decodes HTTP request bodies.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/cafepos/config"
)

// JSON decodes r.Body as JSON into dest. The body is capped at
// MAX_BODY_BYTES.
func JSON(r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return wrap(err, "invalid JSON")
	}
	return nil
}

// Multipart parses a multipart/form-data body so its fields and files are
// available through r.FormValue and r.FormFile. Parts beyond the in-memory
// limit spill to temporary files.
func Multipart(r *http.Request) error {
	limit := config.MaxBodyBytes()
	r.Body = http.MaxBytesReader(nil, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		return wrap(err, "invalid form data")
	}
	return nil
}

func wrap(err error, what string) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
	}
	return fmt.Errorf("%s: %w", what, err)
}
