package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDotEnv_MissingFileIsEmpty(t *testing.T) {
	withHome(t)
	vals, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(vals) != 0 {
		t.Fatalf("vals = %v, want empty", vals)
	}
}

func TestLoadDotEnv_ParsesKeysAndSkipsComments(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".ragbot")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := "# comment\n\nRAGBOT_LLM_API_KEY=sk-123\n  RAGBOT_TOP_K = 5\nBROKEN LINE\n=novalue\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	vals, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if vals["RAGBOT_LLM_API_KEY"] != "sk-123" {
		t.Fatalf("key = %q", vals["RAGBOT_LLM_API_KEY"])
	}
	if vals["RAGBOT_TOP_K"] != " 5" {
		t.Fatalf("value must be taken as-is, got %q", vals["RAGBOT_TOP_K"])
	}
	if _, ok := vals["BROKEN LINE"]; ok {
		t.Fatal("malformed line must be skipped")
	}
}

func TestGetConfigValue_EnvWinsOverDotEnv(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".ragbot")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RAGBOT_LLM_MODEL=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	v, err := GetConfigValue("RAGBOT_LLM_MODEL")
	if err != nil {
		t.Fatal(err)
	}
	if v != "from-dotenv" {
		t.Fatalf("fallback value = %q", v)
	}

	t.Setenv("RAGBOT_LLM_MODEL", "from-env")
	v, err = GetConfigValue("RAGBOT_LLM_MODEL")
	if err != nil {
		t.Fatal(err)
	}
	if v != "from-env" {
		t.Fatalf("env must win, got %q", v)
	}
}

func TestEnsureDotEnvTemplate_CreatesOnceOnly(t *testing.T) {
	home := withHome(t)
	if err := os.MkdirAll(filepath.Join(home, ".ragbot"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	p, _ := DotEnvPath()
	if err := os.WriteFile(p, []byte("RAGBOT_LLM_API_KEY=keep-me\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "RAGBOT_LLM_API_KEY=keep-me\n" {
		t.Fatal("existing .env was overwritten")
	}
}
