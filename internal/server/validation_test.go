package server

import (
	"testing"

	"red-light/internal/config"
)

func TestClampSessionConfig(t *testing.T) {
	defaults := config.Default()
	cases := []struct {
		name string
		req  resetRequest
		want sessionConfig
	}{
		{
			name: "in range",
			req:  resetRequest{SensitivityLevel: 20, BasePoints: 50, RestSeconds: 90},
			want: sessionConfig{SensitivityLevel: 20, BasePoints: 50, RestSeconds: 90},
		},
		{
			name: "clamped high",
			req:  resetRequest{SensitivityLevel: 99, BasePoints: 99999, RestSeconds: 9999},
			want: sessionConfig{SensitivityLevel: 40, BasePoints: 10000, RestSeconds: 600},
		},
		{
			name: "clamped low",
			req:  resetRequest{SensitivityLevel: -3, BasePoints: -1, RestSeconds: 1},
			want: sessionConfig{SensitivityLevel: 1, BasePoints: 1, RestSeconds: 5},
		},
		{
			name: "defaults for absent fields",
			req:  resetRequest{},
			want: sessionConfig{
				SensitivityLevel: defaults.SensitivityLevel,
				BasePoints:       defaults.BasePoints,
				RestSeconds:      defaults.RestSeconds,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampSessionConfig(tc.req, defaults); got != tc.want {
				t.Fatalf("clampSessionConfig(%+v) = %+v, want %+v", tc.req, got, tc.want)
			}
		})
	}
}
