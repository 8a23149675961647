package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/honeyflow/hive-api/internal/auth"
)

func testExtractor(t *testing.T) (*auth.Extractor, *auth.TokenCodec) {
	t.Helper()
	codec, err := auth.NewTokenCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return auth.NewExtractor(codec), codec
}

func runChain(t *testing.T, mw []echo.MiddlewareFunc, authz string) (*httptest.ResponseRecorder, *auth.Identity, bool) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	var seen *auth.Identity
	reached := false
	h := func(c echo.Context) error {
		reached = true
		seen = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	if err := h(c); err != nil {
		t.Fatalf("chain: %v", err)
	}
	return rec, seen, reached
}

func TestSetIdentity_RoundTrip(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())
	if got := IdentityFrom(c); got != nil {
		t.Fatalf("fresh context identity = %+v, want nil", got)
	}
	id := &auth.Identity{UserID: 3, Role: auth.RoleBeekeeper}
	SetIdentity(c, id)
	if got := IdentityFrom(c); got != id {
		t.Errorf("identity = %+v, want the stored pointer", got)
	}
}

func TestResolveIdentity_SetsIdentity(t *testing.T) {
	ext, codec := testExtractor(t)
	token, _ := codec.Sign(7, auth.RoleAdmin)

	_, seen, reached := runChain(t, []echo.MiddlewareFunc{ResolveIdentity(ext)}, "Bearer "+token)
	if !reached {
		t.Fatal("handler not reached")
	}
	if seen == nil || seen.UserID != 7 || seen.Role != auth.RoleAdmin {
		t.Errorf("identity = %+v, want {7 ADMIN}", seen)
	}
}

func TestResolveIdentity_NeverRejects(t *testing.T) {
	ext, _ := testExtractor(t)

	for name, authz := range map[string]string{
		"no header":  "",
		"bad token":  "Bearer garbage",
		"bad scheme": "Basic abc",
	} {
		rec, seen, reached := runChain(t, []echo.MiddlewareFunc{ResolveIdentity(ext)}, authz)
		if !reached {
			t.Errorf("%s: handler not reached", name)
		}
		if seen != nil {
			t.Errorf("%s: identity = %+v, want nil", name, seen)
		}
		if rec.Code != 200 {
			t.Errorf("%s: status = %d, want 200", name, rec.Code)
		}
	}
}

func TestRequireIdentity(t *testing.T) {
	ext, codec := testExtractor(t)
	chain := []echo.MiddlewareFunc{ResolveIdentity(ext), RequireIdentity()}

	rec, _, reached := runChain(t, chain, "")
	if reached {
		t.Error("handler reached without identity")
	}
	if rec.Code != 401 {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	token, _ := codec.Sign(1, auth.RoleBeekeeper)
	rec, _, reached = runChain(t, chain, "Bearer "+token)
	if !reached || rec.Code != 200 {
		t.Errorf("authenticated: reached = %v status = %d, want true/200", reached, rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	ext, codec := testExtractor(t)
	chain := []echo.MiddlewareFunc{ResolveIdentity(ext), RequireRole(auth.RoleAdmin)}

	rec, _, reached := runChain(t, chain, "")
	if reached || rec.Code != 403 {
		t.Errorf("anonymous: reached = %v status = %d, want false/403", reached, rec.Code)
	}

	token, _ := codec.Sign(1, auth.RoleBeekeeper)
	rec, _, reached = runChain(t, chain, "Bearer "+token)
	if reached || rec.Code != 403 {
		t.Errorf("wrong role: reached = %v status = %d, want false/403", reached, rec.Code)
	}

	token, _ = codec.Sign(1, auth.RoleAdmin)
	rec, _, reached = runChain(t, chain, "Bearer "+token)
	if !reached || rec.Code != 200 {
		t.Errorf("admin: reached = %v status = %d, want true/200", reached, rec.Code)
	}
}
