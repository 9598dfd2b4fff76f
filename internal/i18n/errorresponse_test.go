package i18n

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponse_FactoryHelpers(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) *ErrorResponse
		code ErrorCode
	}{
		{"BadRequest", BadRequest, ErrorBadRequest},
		{"Unauthorized", Unauthorized, ErrorUnauthorized},
		{"Forbidden", Forbidden, ErrorForbidden},
		{"NotFound", NotFound, ErrorNotFound},
		{"Conflict", Conflict, ErrorConflict},
		{"InternalError", InternalError, ErrorInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.fn("MsgID")
			assert.Equal(t, tc.code, r.StatusCode)
			// Err should be *ErrorWithCode holding the same code
			var ew *ErrorWithCode
			assert.True(t, errors.As(r.Err, &ew))
			if ew != nil {
				assert.Equal(t, tc.code, ew.GetCode())
			}
		})
	}
}

func TestErrorResponse_Error(t *testing.T) {
	// From ErrorWithCode preserves code
	base := NewErrorWithCode("X", ErrorForbidden)
	r1 := Error(base)
	assert.Equal(t, ErrorForbidden, r1.StatusCode)
	assert.Equal(t, base, r1.Err)

	// From generic error yields InternalServer
	ge := errors.New("oops")
	r2 := Error(ge)
	assert.Equal(t, ErrorInternalServer, r2.StatusCode)
	assert.Equal(t, ge, r2.Err)
}

func TestErrorResponse_ParamsHelpers(t *testing.T) {
	base := NewErrorWithCode("X", ErrorConflict)
	r := ErrorWithParam(base, "Name", "falafel")
	assert.Equal(t, ErrorConflict, r.StatusCode)

	r2 := ErrorWithParams(base, map[string]interface{}{"A": 1, "B": 2})
	assert.Equal(t, ErrorConflict, r2.StatusCode)

	// generic errors become internal server errors carrying the params
	r3 := ErrorWithParam(errors.New("plain"), "K", "V")
	assert.Equal(t, ErrorInternalServer, r3.StatusCode)
}

func TestErrorResponse_SendAndChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		Error(ErrorRestaurantNotFound).Send(c)
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	r2 := gin.New()
	r2.GET("/y", func(c *gin.Context) {
		BadRequest("ErrorBadRequest").WithParam("Reason", "bad").WithHttpCode(ErrorConflict).Send(c)
	})
	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest(http.MethodGet, "/y", nil)
	r2.ServeHTTP(w2, req2)
	// Send uses the embedded error's own code
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}
