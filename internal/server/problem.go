package server

import (
	"encoding/json"
	"net/http"
)

// Problem types for RFC 7807 Problem Details responses.
const (
	problemBase              = "https://storefront.dev/problems/"
	ProblemTypeNotFound      = problemBase + "not-found"
	ProblemTypeBadRequest    = problemBase + "bad-request"
	ProblemTypeInternal      = problemBase + "internal-error"
	ProblemTypeRateLimited   = problemBase + "rate-limited"
	ProblemTypeUpstream      = problemBase + "upstream-error"
	ProblemTypeUpstreamSlow  = problemBase + "upstream-timeout"
	ProblemTypeUnprocessable = problemBase + "validation-failed"
	ProblemTypeUnauthorized  = problemBase + "unauthorized"
	ProblemTypeUnavailable   = problemBase + "unavailable"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"` // per-field validation messages
}

// WriteProblem writes an RFC 7807 Problem Details JSON response.
func WriteProblem(w http.ResponseWriter, p Problem) {
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// NotFound writes a 404 problem response.
func NotFound(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{Type: ProblemTypeNotFound, Status: http.StatusNotFound, Detail: detail, Instance: instance})
}

// BadRequest writes a 400 problem response.
func BadRequest(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{Type: ProblemTypeBadRequest, Status: http.StatusBadRequest, Detail: detail, Instance: instance})
}

// InternalError writes a 500 problem response.
func InternalError(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{Type: ProblemTypeInternal, Status: http.StatusInternalServerError, Detail: detail, Instance: instance})
}

// Unauthorized writes a 401 problem response.
func Unauthorized(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{Type: ProblemTypeUnauthorized, Status: http.StatusUnauthorized, Detail: detail, Instance: instance})
}

// ServiceUnavailable writes a 503 problem response.
func ServiceUnavailable(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{Type: ProblemTypeUnavailable, Status: http.StatusServiceUnavailable, Detail: detail, Instance: instance})
}

// RateLimited writes a 429 problem response.
func RateLimited(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{Type: ProblemTypeRateLimited, Status: http.StatusTooManyRequests, Detail: detail, Instance: instance})
}

// BadGateway writes a 502 problem response for upstream failures.
func BadGateway(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{Type: ProblemTypeUpstream, Status: http.StatusBadGateway, Detail: detail, Instance: instance})
}

// GatewayTimeout writes a 504 problem response.
func GatewayTimeout(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, Problem{Type: ProblemTypeUpstreamSlow, Status: http.StatusGatewayTimeout, Detail: detail, Instance: instance})
}

// ValidationFailed writes a 422 problem response listing field errors.
func ValidationFailed(w http.ResponseWriter, fields map[string]string, instance string) {
	WriteProblem(w, Problem{
		Type:     ProblemTypeUnprocessable,
		Status:   http.StatusUnprocessableEntity,
		Detail:   "one or more fields are invalid",
		Instance: instance,
		Errors:   fields,
	})
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
