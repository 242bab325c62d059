package envconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/ByteArena/b2contact"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeEnv(t, "B2_LINEAR_SLOP=0.01\nB2_BAUMGARTE=0.5\n")

	settings, err := Load(path, b2contact.MakeB2ContactSolverSettings())
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if settings.LinearSlop != 0.01 || settings.Baumgarte != 0.5 {
		t.Fatalf("got %+v", settings)
	}

	if settings.VelocityThreshold != b2contact.B2_velocityThreshold {
		t.Fatalf("untouched field changed: %+v", settings)
	}
}

func TestLoadEnvironmentWins(t *testing.T) {
	path := writeEnv(t, "B2_SPECULATIVE_BIAS_RATE=30\n")
	t.Setenv(SpeculativeBiasRate, "120")

	settings, err := Load(path, b2contact.MakeB2ContactSolverSettings())
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if settings.SpeculativeBiasRate != 120.0 {
		t.Fatalf("speculative bias rate %v, want 120", settings.SpeculativeBiasRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.env"), b2contact.MakeB2ContactSolverSettings())
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if settings != b2contact.MakeB2ContactSolverSettings() {
		t.Fatalf("defaults changed: %+v", settings)
	}
}

func TestApplyErrors(t *testing.T) {
	defaults := b2contact.MakeB2ContactSolverSettings()

	if _, err := Apply(defaults, map[string]string{MaxLinearCorrection: "lots"}); err == nil {
		t.Fatalf("malformed value accepted")
	}

	_, err := Apply(defaults, map[string]string{Baumgarte: "2"})
	if !errors.Is(err, b2contact.ErrB2InvalidSettings) {
		t.Fatalf("out of range baumgarte: %v", err)
	}
}
