package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/placesapi/placesapi/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Title string   `json:"title" validate:"required,max=5"`
	Score *float64 `json:"score" validate:"required"`
}

func (p *testPayload) Validate() error {
	return Validator().Struct(p)
}

type plainErrorPayload struct{}

func (plainErrorPayload) Validate() error {
	return errors.New("start must be before end")
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	httpErr, ok := err.(*errs.HTTPError)
	require.True(t, ok, "expected *errs.HTTPError, got %T (%v)", err, err)
	return httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	var p testPayload
	require.NoError(t, BindAndValidate(newContext(`{"title":"abc","score":0}`), &p))
	assert.Equal(t, "abc", p.Title)
	require.NotNil(t, p.Score)
	assert.Equal(t, 0.0, *p.Score)
}

func TestBindAndValidate_RuleFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields map[string]string
	}{
		{
			name:   "missing everything",
			body:   `{}`,
			fields: map[string]string{"title": "is required", "score": "is required"},
		},
		{
			name:   "too long",
			body:   `{"title":"abcdef","score":1}`,
			fields: map[string]string{"title": "must not exceed 5 characters"},
		},
		{
			name:   "wrong type",
			body:   `{"title":"abc","score":"high"}`,
			fields: map[string]string{"score": "must be a number"},
		},
		{
			name:   "wrong type plus missing field",
			body:   `{"score":"high"}`,
			fields: map[string]string{"score": "must be a number", "title": "is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p testPayload
			httpErr := requireHTTPError(t, BindAndValidate(newContext(tt.body), &p))

			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, "Validation failed", httpErr.Message)
			assert.Len(t, httpErr.Errors, len(tt.fields))
			for _, fe := range httpErr.Errors {
				assert.Equal(t, tt.fields[fe.Field], fe.Error, fe.Field)
			}
		})
	}
}

func TestBindAndValidate_MultibyteLength(t *testing.T) {
	var p testPayload
	require.NoError(t, BindAndValidate(newContext(`{"title":"ééééé","score":1}`), &p))
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	var p testPayload
	httpErr := requireHTTPError(t, BindAndValidate(newContext(`{"title":`), &p))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_PlainValidateError(t *testing.T) {
	httpErr := requireHTTPError(t, BindAndValidate(newContext(`{}`), &plainErrorPayload{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "non_field_errors", httpErr.Errors[0].Field)
	assert.Equal(t, "start must be before end", httpErr.Errors[0].Error)
}

type pathPayload struct {
	ID string `param:"id" validate:"required"`
}

func (p *pathPayload) Validate() error { return Validator().Struct(p) }

func (*pathPayload) PathOnly() {}

func TestBindAndValidate_PathOnlyLeavesBodyUnread(t *testing.T) {
	c := newContext(`{"title":"ok","score":1}`)
	c.SetParamNames("id")
	c.SetParamValues("7")

	var path pathPayload
	require.NoError(t, BindAndValidate(c, &path))
	assert.Equal(t, "7", path.ID)

	var body testPayload
	require.NoError(t, BindAndValidate(c, &body))
	assert.Equal(t, "ok", body.Title)
}
