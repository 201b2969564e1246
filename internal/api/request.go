package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cloo-solutions/relicguide/internal/domain"
)

// DecodeJSON reads a JSON request body into v. A body cut off by
// http.MaxBytesReader yields domain.ErrBodyTooLarge; any other failure yields
// domain.ErrMalformedRequest.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.ErrBodyTooLarge
		}
		return domain.ErrMalformedRequest
	}
	return nil
}
