package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	got := dsn("api", "s3cret", "db.internal", "3306", "honeyflow")
	if !strings.HasPrefix(got, "api:s3cret@tcp(db.internal:3306)/honeyflow?") {
		t.Errorf("dsn = %q, want api:s3cret@tcp(db.internal:3306)/honeyflow? prefix", got)
	}
	for _, want := range []string{"parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(got, want) {
			t.Errorf("dsn = %q, missing %q", got, want)
		}
	}
}

func TestDSN_EmptyPassword(t *testing.T) {
	got := dsn("api", "", "localhost", "3306", "honeyflow")
	if !strings.HasPrefix(got, "api@tcp(localhost:3306)/honeyflow?") {
		t.Errorf("dsn = %q, want no credential separator for empty password", got)
	}
}
