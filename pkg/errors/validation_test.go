package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "workspace.json", false},
		{"nested", "docs/architecture/workspace.yaml", false},
		{"absolute", "/tmp/workspace.json", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	supported := []string{"dgml", "json", "svg"}
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"dgml", "dgml", false},
		{"svg", "svg", false},
		{"empty", "", true},
		{"unknown", "gif", true},
		{"case sensitive", "DGML", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.input, supported)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	supported := []string{"dgml", "json"}
	if err := ValidateFormats([]string{"dgml", "json"}, supported); err != nil {
		t.Errorf("ValidateFormats() error = %v", err)
	}
	if err := ValidateFormats([]string{"dgml", "dgml"}, supported); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("duplicate: error = %v, want INVALID_FORMAT", err)
	}
	if err := ValidateFormats([]string{"png"}, supported); err == nil {
		t.Error("unsupported: expected error")
	}
}
