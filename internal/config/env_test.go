package config

import (
	"testing"
	"time"
)

func TestEnvDefaults(t *testing.T) {
	ResetEnv()
	defer ResetEnv()

	e := Env()

	if e.UploadTick != 200*time.Millisecond {
		t.Errorf("expected default tick 200ms, got %v", e.UploadTick)
	}
	if e.UploadStep != 10 {
		t.Errorf("expected default step 10, got %d", e.UploadStep)
	}
	if e.MaxUploadBytes != 10<<20 {
		t.Errorf("expected default max upload 10MB, got %d", e.MaxUploadBytes)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TESIS_UPLOAD_TICK_MS", "50")
	t.Setenv("TESIS_UPLOAD_STEP", "25")
	t.Setenv("TESIS_DATA_DIR", "/tmp/tesis-data")
	ResetEnv()
	defer ResetEnv()

	e := Env()

	if e.UploadTick != 50*time.Millisecond {
		t.Errorf("expected tick 50ms, got %v", e.UploadTick)
	}
	if e.UploadStep != 25 {
		t.Errorf("expected step 25, got %d", e.UploadStep)
	}
	if got := GetPaths().Data; got != "/tmp/tesis-data" {
		t.Errorf("expected data dir override, got %s", got)
	}
}

func TestEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("TESIS_UPLOAD_STEP", "not-a-number")
	ResetEnv()
	defer ResetEnv()

	if got := Env().UploadStep; got != 10 {
		t.Errorf("expected fallback step 10, got %d", got)
	}
}

func TestPathsUnderHome(t *testing.T) {
	ResetEnv()
	defer ResetEnv()

	p := GetPaths()
	if p.Home == "" || p.Data == "" || p.Documents == "" {
		t.Fatalf("expected all paths set, got %+v", p)
	}
	if Path("data") != p.Home+"/data" {
		t.Errorf("Path helper mismatch: %s", Path("data"))
	}
}
