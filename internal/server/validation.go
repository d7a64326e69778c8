package server

import "red-light/internal/config"

const (
	minBasePoints = 1
	maxBasePoints = 10000
	minRestSecs   = 5
	maxRestSecs   = 600
)

// clampSessionConfig folds a host-supplied reset body into a valid session
// configuration, falling back to server defaults for absent fields.
func clampSessionConfig(req resetRequest, defaults config.Config) sessionConfig {
	level := req.SensitivityLevel
	if level == 0 {
		level = defaults.SensitivityLevel
	}
	base := req.BasePoints
	if base == 0 {
		base = defaults.BasePoints
	}
	rest := req.RestSeconds
	if rest == 0 {
		rest = defaults.RestSeconds
	}
	return sessionConfig{
		SensitivityLevel: clampInt(level, minSensitivityLevel, maxSensitivityLevel),
		BasePoints:       clampInt(base, minBasePoints, maxBasePoints),
		RestSeconds:      clampInt(rest, minRestSecs, maxRestSecs),
	}
}
