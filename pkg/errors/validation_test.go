package errors

import (
	"strings"
	"testing"
)

type sample struct {
	ID      string  `validate:"required"`
	Mass    float64 `validate:"gte=0"`
	Speed   float64 `validate:"gt=0"`
	Ratio   float64 `validate:"lte=1"`
	Cooling string  `validate:"oneof=geometric linear"`
}

func TestValidateStruct(t *testing.T) {
	valid := sample{ID: "a", Mass: 1, Speed: 2, Ratio: 0.5, Cooling: "linear"}

	tests := []struct {
		name     string
		mutate   func(*sample)
		wantErr  bool
		contains string
	}{
		{"valid", func(*sample) {}, false, ""},
		{"missing id", func(s *sample) { s.ID = "" }, true, "ID is required"},
		{"negative mass", func(s *sample) { s.Mass = -1 }, true, "Mass must be >= 0"},
		{"zero speed", func(s *sample) { s.Speed = 0 }, true, "Speed must be > 0"},
		{"ratio too large", func(s *sample) { s.Ratio = 2 }, true, "Ratio must be <= 1"},
		{"unknown cooling", func(s *sample) { s.Cooling = "cubic" }, true, "Cooling must be one of [geometric linear]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := ValidateStruct(`node "a"`, s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !Is(err, ErrCodeInvalidConfiguration) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfiguration)
			}
			if !strings.Contains(err.Error(), tt.contains) || !strings.Contains(err.Error(), `node "a"`) {
				t.Errorf("error %q should mention %q and the subject", err.Error(), tt.contains)
			}
		})
	}
}

func TestValidateStructReportsEveryField(t *testing.T) {
	err := ValidateStruct("params", sample{Mass: -1, Cooling: "linear", Speed: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "ID is required") || !strings.Contains(msg, "Mass must be >= 0") {
		t.Errorf("error %q should list both failed fields", msg)
	}
}
