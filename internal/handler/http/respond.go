package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RahulGalipelli/AdminApp/pkg/httputil"
)

// maxBodyBytes caps request bodies; the largest form is a product.
const maxBodyBytes = 1 << 20

// decode reads the JSON body into dst. On failure it writes a 400 and
// returns false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteJSON(w, http.StatusRequestEntityTooLarge, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "BODY_TOO_LARGE", Message: "request body too large"},
			})
			return false
		}
		httputil.WriteBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}

// decodeOptional is decode for endpoints whose body may be empty.
func decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.ContentLength == 0 {
		return true
	}
	return decode(w, r, dst)
}
