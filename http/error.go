package http

import (
	"encoding/json"
	"net/http"

	"github.com/minjae-dev/campcrawl"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	campcrawl.ECONFLICT:     http.StatusConflict,
	campcrawl.EINVALID:      http.StatusBadRequest,
	campcrawl.ENOTFOUND:     http.StatusNotFound,
	campcrawl.EUNAUTHORIZED: http.StatusUnauthorized,
	campcrawl.EUNAVAILABLE:  http.StatusServiceUnavailable,
	campcrawl.EINTERNAL:     http.StatusInternalServerError,
}

// errorStatus returns the HTTP status for an application error.
func errorStatus(err error) int {
	if status, ok := codes[campcrawl.ErrorCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error writes an error envelope. Internal errors are logged; their details
// are not sent to the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	if campcrawl.ErrorCode(err) == campcrawl.EINTERNAL {
		s.Logger.Error("internal error", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, errorStatus(err), map[string]string{"error": campcrawl.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
