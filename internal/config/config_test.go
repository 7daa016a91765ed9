package config

import "testing"

func TestGetConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected Config
	}{
		{
			name:     "Defaults",
			env:      map[string]string{},
			expected: Config{ENV: "development"},
		},
		{
			name: "Overrides",
			env: map[string]string{
				"ENV":                      "production",
				"UNDERFLIPPER_FLIP_OFFSET": "1.5",
				"UNDERFLIPPER_DEBUG_DIR":   "/tmp/uf",
				"UNDERFLIPPER_VERBOSE":     "1",
			},
			expected: Config{ENV: "production", FlipOffset: 1.5, DebugDir: "/tmp/uf", Verbose: true},
		},
		{
			name:     "Bad offset falls back",
			env:      map[string]string{"UNDERFLIPPER_FLIP_OFFSET": "one"},
			expected: Config{ENV: "development"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"ENV", "UNDERFLIPPER_FLIP_OFFSET", "UNDERFLIPPER_DEBUG_DIR", "UNDERFLIPPER_VERBOSE"} {
				t.Setenv(key, tt.env[key])
			}
			if got := GetConfig(); got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestIsProduction(t *testing.T) {
	if !(Config{ENV: "Production"}).IsProduction() {
		t.Error("expected Production to be production")
	}
	if (Config{ENV: "development"}).IsProduction() {
		t.Error("expected development not to be production")
	}
}
