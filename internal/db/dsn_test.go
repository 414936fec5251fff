package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"url form untouched", "postgres://u:p@db:5432/app", "postgres://u:p@db:5432/app"},
		{"quoted url", `"postgres://u:p@db:5432/app"`, "postgres://u:p@db:5432/app"},
		{"kv gets sslmode", "host=db user=app dbname=app", "host=db user=app dbname=app sslmode=disable"},
		{"kv keeps sslmode", "host=db sslmode=require", "host=db sslmode=require"},
		{"kv whitespace collapsed", "  host=db   user=app  ", "host=db user=app sslmode=disable"},
		{"sqlite path untouched", "file:invoice_app.db", "file:invoice_app.db"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeDSN(tc.in); got != tc.want {
				t.Errorf("NormalizeDSN(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsPostgres(t *testing.T) {
	cases := []struct {
		dsn  string
		want bool
	}{
		{"postgres://u:p@db/app", true},
		{"postgresql://u:p@db/app", true},
		{"host=db user=app dbname=app", true},
		{"file:invoice_app.db", false},
		{"test.db", false},
	}
	for _, tc := range cases {
		if got := IsPostgres(tc.dsn); got != tc.want {
			t.Errorf("IsPostgres(%q) = %v, want %v", tc.dsn, got, tc.want)
		}
	}
}
