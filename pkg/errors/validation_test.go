package errors

import (
	"strings"
	"testing"
)

func TestValidateInstanceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"designator", "U2", false},
		{"lowercase", "t1", false},
		{"underscore", "cap_center", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"leading digit", "2U", true},
		{"dot", "U2.VIN", true},
		{"space", "U 2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInstanceName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInstanceName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAnchorName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"pin", "VIN", false},
		{"hash", "NMOS#", false},
		{"dots", "Freq.Sync.", false},
		{"slash", "ON/OFF", false},

		{"empty", "", true},
		{"space", "V IN", true},
		{"newline", "VIN\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnchorName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAnchorName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/buck.svg", false},
		{"absolute", "/tmp/buck.svg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "out\x00.svg", true},
		{"backslash", "out\\buck.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}
