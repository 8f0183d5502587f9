package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDotEnvLine(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		key   string
		value string
		ok    bool
	}{
		{"plain pair", "DB_PATH=./priceme.db", "DB_PATH", "./priceme.db", true},
		{"export prefix", "export PORT=9090", "PORT", "9090", true},
		{"double quoted", `APP_ENV="prod"`, "APP_ENV", "prod", true},
		{"single quoted", "GREETING='hello world'", "GREETING", "hello world", true},
		{"surrounding spaces", "  KEY = value  ", "KEY", "value", true},
		{"empty value", "EMPTY=", "EMPTY", "", true},
		{"comment", "# PORT=9090", "", "", false},
		{"blank", "   ", "", "", false},
		{"no equals", "JUSTAWORD", "", "", false},
		{"missing key", "=value", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, value, ok := parseDotEnvLine(tc.raw)
			if ok != tc.ok {
				t.Fatalf("parseDotEnvLine(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
			}
			if key != tc.key || value != tc.value {
				t.Fatalf("parseDotEnvLine(%q) = (%q, %q), want (%q, %q)", tc.raw, key, value, tc.key, tc.value)
			}
		})
	}
}

func TestLoadDotEnvAppliesFile(t *testing.T) {
	t.Setenv("PRICEME_TEST_A", "")
	t.Setenv("PRICEME_TEST_B", "")

	path := filepath.Join(t.TempDir(), ".env")
	content := []byte("# local overrides\nPRICEME_TEST_A=one\nexport PRICEME_TEST_B=\"two\"\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("PRICEME_TEST_A"); got != "one" {
		t.Fatalf("PRICEME_TEST_A = %q, want %q", got, "one")
	}
	if got := os.Getenv("PRICEME_TEST_B"); got != "two" {
		t.Fatalf("PRICEME_TEST_B = %q, want %q", got, "two")
	}
}

func TestLoadDotEnvKeepsExistingEnv(t *testing.T) {
	t.Setenv("PRICEME_TEST_KEEP", "already")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PRICEME_TEST_KEEP=fromfile\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("PRICEME_TEST_KEEP"); got != "already" {
		t.Fatalf("PRICEME_TEST_KEEP = %q, want %q", got, "already")
	}
}

func TestLoadDotEnvMissingFileIsNotAnError(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}
