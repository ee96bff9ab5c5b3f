package httputil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the success response shape: the optional payload plus the
// status code and a human-readable detail.
type Envelope struct {
	Data       interface{} `json:"data,omitempty"`
	StatusCode int         `json:"status_code"`
	Detail     string      `json:"detail"`
}

// errorBody is the failure response shape: detail only.
type errorBody struct {
	Detail string `json:"detail"`
}

// RespondData writes a success envelope with the generic detail. Update
// and delete endpoints carry operation-specific details via
// RespondDetail instead.
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	RespondDetail(w, status, data, "Successful")
}

// RespondDetail writes a success envelope with the given detail string.
// It marshals first so a failed encoding never produces a partial
// response after headers are sent.
func RespondDetail(w http.ResponseWriter, status int, data interface{}, detail string) {
	envelope := Envelope{
		Data:       data,
		StatusCode: status,
		Detail:     detail,
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondJSON writes a bare JSON response with the given status code,
// for endpoints whose body shape is fixed by contract rather than
// enveloped.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError writes an error response carrying only the detail string.
func RespondError(w http.ResponseWriter, status int, detail string) {
	payload, err := json.Marshal(errorBody{Detail: detail})
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
