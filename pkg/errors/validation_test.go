package errors

import (
	"math"
	"testing"
)

func TestValidateVariant(t *testing.T) {
	valid := []string{"grid", "lattice", "stack"}
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"grid", false},
		{"stack", false},
		{"", true},
		{"Grid", true},
		{"tower", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateVariant(tt.input, valid)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVariant(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidVariant) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidVariant)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	valid := []string{"svg", "json"}
	if err := ValidateFormat("svg", valid); err != nil {
		t.Errorf("svg: %v", err)
	}
	if err := ValidateFormat("png", valid); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("png: got %v, want INVALID_FORMAT", err)
	}
}

func TestValidateExtent(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 1000, false},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
		{"huge", 1e12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExtent("width", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExtent(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"42", 42, false},
		{" 7 ", 7, false},
		{"0xff", 255, false},
		{"18446744073709551615", 18446744073709551615, false},
		{"", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeed(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeed(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSeed(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/tower.svg", false},
		{"absolute", "/tmp/building.toml", false},
		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
