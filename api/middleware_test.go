package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayur-samrutwar/orion/gate"
)

type allowList map[string]bool

func (a allowList) CanAccess(ctx context.Context, address string) bool {
	return a[address]
}

func serve(t *testing.T, mw echo.MiddlewareFunc, headers map[string]string) (*httptest.ResponseRecorder, EchoResponse) {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return OK.SetData(gate.SessionFrom(c.Request().Context()).Address()).Build(c)
	}, mw)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var out EchoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func TestRequireResidency(t *testing.T) {
	mw := RequireResidency(allowList{"0xverified": true})

	tests := []struct {
		name    string
		address string
		want    int
	}{
		{name: "Missing", address: "", want: http.StatusForbidden},
		{name: "Unverified", address: "0xother", want: http.StatusForbidden},
		{name: "Verified", address: "0xverified", want: http.StatusOK},
		{name: "VerifiedPadded", address: "  0xverified ", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := serve(t, mw, map[string]string{HeaderWalletAddress: tt.address})
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, Forbidden.Code, out.Code)
				return
			}
			assert.Equal(t, "0xverified", out.Data)
		})
	}
}

func TestRequireSecret(t *testing.T) {
	rec, _ := serve(t, RequireSecret("s3cret"), map[string]string{HeaderAuthorization: "s3cret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, out := serve(t, RequireSecret("s3cret"), map[string]string{HeaderAuthorization: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, Unauthorized.Code, out.Code)

	rec, _ = serve(t, RequireSecret(""), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEchoResponse_SetDataCopies(t *testing.T) {
	r := OK.SetData(1)
	assert.Equal(t, 1, r.Data)
	assert.Nil(t, OK.Data)
	assert.Equal(t, "custom", Invalid.SetMsg("custom").Msg)
	assert.Equal(t, "Bad request", Invalid.Msg)
}
