// Package envconfig reads contact solver tunables from a .env file and the
// process environment.
package envconfig

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/ByteArena/b2contact"
)

const (
	LinearSlop          = "B2_LINEAR_SLOP"
	MaxLinearCorrection = "B2_MAX_LINEAR_CORRECTION"
	VelocityThreshold   = "B2_VELOCITY_THRESHOLD"
	SpeculativeBiasRate = "B2_SPECULATIVE_BIAS_RATE"
	Baumgarte           = "B2_BAUMGARTE"
)

// Load starts from settings, applies the values found in the file at path and
// then those of the process environment, which win. A missing file is not an
// error; an empty path skips the file.
func Load(path string, settings b2contact.B2ContactSolverSettings) (b2contact.B2ContactSolverSettings, error) {
	values := make(map[string]string)

	if path != "" {
		fileValues, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return settings, errors.Wrapf(err, "reading %s", path)
		}

		for k, v := range fileValues {
			values[k] = v
		}
	}

	for _, key := range []string{LinearSlop, MaxLinearCorrection, VelocityThreshold, SpeculativeBiasRate, Baumgarte} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	return Apply(settings, values)
}

// Apply overrides the fields of settings named in values and validates the result.
func Apply(settings b2contact.B2ContactSolverSettings, values map[string]string) (b2contact.B2ContactSolverSettings, error) {
	fields := []struct {
		key   string
		field *float64
	}{
		{LinearSlop, &settings.LinearSlop},
		{MaxLinearCorrection, &settings.MaxLinearCorrection},
		{VelocityThreshold, &settings.VelocityThreshold},
		{SpeculativeBiasRate, &settings.SpeculativeBiasRate},
		{Baumgarte, &settings.Baumgarte},
	}

	for _, f := range fields {
		raw, ok := values[f.key]
		if !ok || raw == "" {
			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return settings, errors.Wrapf(err, "%s", f.key)
		}

		*f.field = v
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}

	return settings, nil
}
