package database

import (
	"strings"
	"testing"
)

func TestDialects(t *testing.T) {
	tests := []struct {
		name       string
		dialect    Dialect
		driver     string
		subdir     string
		upsertHint string
	}{
		{name: "sqlite", dialect: NewSQLiteDialect(), driver: "sqlite3", subdir: "sqlite", upsertHint: "ON CONFLICT(state_key)"},
		{name: "postgres", dialect: NewPostgresDialect(), driver: "postgres", subdir: "postgres", upsertHint: "ON CONFLICT (state_key)"},
		{name: "mysql", dialect: NewMySQLDialect(), driver: "mysql", subdir: "mysql", upsertHint: "ON DUPLICATE KEY UPDATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.subdir)
			}
			if got := tt.dialect.Name(); got != tt.name {
				t.Errorf("Name() = %v, want %v", got, tt.name)
			}
			if !strings.Contains(tt.dialect.UpsertStateQuery(), tt.upsertHint) {
				t.Errorf("UpsertStateQuery() = %q, want it to contain %q", tt.dialect.UpsertStateQuery(), tt.upsertHint)
			}
		})
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "", want: "sqlite"},
		{input: "SQLite3", want: "sqlite"},
		{input: "postgresql", want: "postgres"},
		{input: "mysql", want: "mysql"},
		{input: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := DialectFor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DialectFor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && d.Name() != tt.want {
				t.Errorf("DialectFor(%q) = %v, want %v", tt.input, d.Name(), tt.want)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT state_value FROM app_state WHERE state_key = ?",
			expected: "SELECT state_value FROM app_state WHERE state_key = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT state_value FROM app_state WHERE state_key = ?",
			expected: "SELECT state_value FROM app_state WHERE state_key = $1",
		},
		{
			name:     "PostgreSQL upsert",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO app_state (state_key, state_value) VALUES (?, ?)",
			expected: "INSERT INTO app_state (state_key, state_value) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "DELETE FROM app_state WHERE state_key LIKE ?",
			expected: "DELETE FROM app_state WHERE state_key LIKE ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}
