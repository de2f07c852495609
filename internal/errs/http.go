// Package errs defines the error shapes returned to API clients.
//
// Every handler error ends up in the global error handler as an
// *HTTPError so clients always receive the same JSON envelope:
//
//	{"code":"BAD_REQUEST","message":"Validation failed","status":400,
//	 "override":true,"errors":{"name":["is required"]},"action":null}
package errs

import (
	"encoding/json"
	"strings"
)

// FieldError is a single validation failure for one request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// FieldErrors serializes as a mapping from field name to the list of
// reasons reported for that field. Reasons keep the order they were added in.
type FieldErrors []FieldError

// MarshalJSON renders {"field": ["reason", ...]}. A nil or empty list
// renders as null so the envelope keeps its key.
func (fe FieldErrors) MarshalJSON() ([]byte, error) {
	if len(fe) == 0 {
		return []byte("null"), nil
	}

	grouped := make(map[string][]string, len(fe))
	for _, e := range fe {
		grouped[e.Field] = append(grouped[e.Field], e.Error)
	}
	return json.Marshal(grouped)
}

// Action is an optional client instruction attached to an error.
type Action struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Value   string `json:"value"`
}

// HTTPError is the error type every API failure is converted into.
//
// Override marks messages that are safe to show to end users as-is.
// EmptyBody suppresses the JSON envelope entirely; the response then
// carries only the status code.
type HTTPError struct {
	Code     string      `json:"code"`
	Message  string      `json:"message"`
	Status   int         `json:"status"`
	Override bool        `json:"override"`
	Errors   FieldErrors `json:"errors"`
	Action   *Action     `json:"action"`

	EmptyBody bool `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithoutBody returns a copy that is sent as a bare status code.
func (e *HTTPError) WithoutBody() *HTTPError {
	clone := *e
	clone.EmptyBody = true
	return &clone
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
