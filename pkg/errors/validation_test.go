package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateCanvasSize(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"default", 1000, false},
		{"tiny", 0.5, false},
		{"max", MaxCanvasSize, false},

		{"zero", 0, true},
		{"negative", -10, true},
		{"too large", MaxCanvasSize + 1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvasSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCanvasSize(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCanvas) {
				t.Errorf("ValidateCanvasSize(%v) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"default", 50, false},
		{"one", 1, false},
		{"larger than canvas", 5000, false},
		{"zero", 0, true},
		{"negative", -50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStep(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStep(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidStep) {
				t.Errorf("ValidateStep(%d) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateCandidates(t *testing.T) {
	tests := []struct {
		name    string
		size    float64
		step    int
		wantErr bool
	}{
		{"default", 1000, 50, false},
		{"at limit", MaxCanvasSize, MaxCanvasSize / MaxCandidates, false},
		{"fine step small canvas", 1000, 3, false},
		{"step one on max canvas", MaxCanvasSize, 1, true},
		{"just over", 1000, 2, true},
		{"zero step left to ValidateStep", 1000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCandidates(tt.size, tt.step)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCandidates(%g, %d) error = %v, wantErr %v", tt.size, tt.step, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidStep) {
				t.Errorf("ValidateCandidates(%g, %d) returned wrong error code: %v", tt.size, tt.step, err)
			}
		})
	}
}

func TestValidateThreshold(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"half", 0.5, false},
		{"one", 1, false},
		{"negative", -0.1, true},
		{"above one", 1.5, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThreshold("color_threshold", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThreshold(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidThreshold) {
					t.Errorf("ValidateThreshold(%v) returned wrong error code: %v", tt.input, err)
				}
				if !strings.Contains(err.Error(), "color_threshold") {
					t.Errorf("error %q does not name the threshold", err)
				}
			}
		})
	}
}

func TestValidateStrokeWidthAndScale(t *testing.T) {
	if err := ValidateStrokeWidth(0); err != nil {
		t.Errorf("ValidateStrokeWidth(0) = %v, want nil", err)
	}
	if err := ValidateStrokeWidth(-1); err == nil {
		t.Error("ValidateStrokeWidth(-1) = nil, want error")
	}
	if err := ValidateScale(1); err != nil {
		t.Errorf("ValidateScale(1) = %v, want nil", err)
	}
	for _, s := range []float64{0, -1, MaxScale + 1, math.NaN()} {
		if err := ValidateScale(s); err == nil {
			t.Errorf("ValidateScale(%v) = nil, want error", s)
		}
	}
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint64
		wantErr bool
	}{
		{"default", "42", 42, false},
		{"zero", "0", 0, false},
		{"padded", " 99999 ", 99999, false},
		{"max uint64", "18446744073709551615", math.MaxUint64, false},

		{"empty", "", 0, true},
		{"negative", "-1", 0, true},
		{"float", "4.2", 0, true},
		{"word", "seed", 0, true},
		{"overflow", "18446744073709551616", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeed(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeed(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidSeed) {
					t.Errorf("ParseSeed(%q) returned wrong error code: %v", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseSeed(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"six digits", "#FFD500", false},
		{"lower case", "#ffd500", false},
		{"three digits", "#fff", false},

		{"empty", "", true},
		{"no hash", "FFD500", true},
		{"short", "#ff", true},
		{"long", "#ffd5000", true},
		{"non hex", "#gg0000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("ValidateHexColor(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateFilePrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "mondrian", false},
		{"with dash", "my-art", false},
		{"with dot", "v1.2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"slash", "out/mondrian", true},
		{"backslash", "out\\mondrian", true},
		{"traversal", "..mondrian", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePrefix(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePrefix(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateFilePrefix(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidCanvas,
		ErrCodeInvalidStep,
		ErrCodeInvalidThreshold,
		ErrCodeInvalidStrategy,
		ErrCodeInvalidFormat,
		ErrCodeInvalidColor,
		ErrCodeInvalidSeed,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPath,
		ErrCodeFileNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
