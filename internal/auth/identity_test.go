package auth

import (
	"net/http/httptest"
	"testing"
	"time"
)

func newTestExtractor(t *testing.T) (*Extractor, *TokenCodec) {
	t.Helper()
	tc, err := NewTokenCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return NewExtractor(tc), tc
}

func TestExtractor_ValidBearer(t *testing.T) {
	ext, tc := newTestExtractor(t)
	token, err := tc.Sign(7, RoleBeekeeper)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	req := httptest.NewRequest("GET", "/v1/hives", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	id := ext.FromRequest(req)
	if id == nil {
		t.Fatal("identity = nil, want resolved identity")
	}
	if id.UserID != 7 || id.Role != RoleBeekeeper {
		t.Errorf("identity = %+v, want {7 BEEKEEPER}", id)
	}
}

func TestExtractor_FailClosed(t *testing.T) {
	ext, tc := newTestExtractor(t)
	token, _ := tc.Sign(7, RoleBeekeeper)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"lowercase":      "bearer " + token,
		"no token":       "Bearer",
		"no token space": "Bearer ",
		"extra space":    "Bearer  " + token,
		"trailing junk":  "Bearer " + token + " junk",
		"garbage token":  "Bearer not-a-token",
		"token only":     token,
	}
	for name, header := range cases {
		req := httptest.NewRequest("GET", "/v1/hives", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		if id := ext.FromRequest(req); id != nil {
			t.Errorf("%s: identity = %+v, want nil", name, id)
		}
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"BEEKEEPER", RoleBeekeeper, true},
		{"ADMIN", RoleAdmin, true},
		{"ASSOCIATION_REP", RoleAssociationRep, true},
		{" admin ", RoleAdmin, true},
		{"beekeeper", RoleBeekeeper, true},
		{"", "", false},
		{"SUPERUSER", "", false},
		{"ADMINX", "", false},
	}
	for _, tt := range cases {
		got, ok := ParseRole(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
