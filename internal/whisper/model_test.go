package whisper

import (
	"errors"
	"testing"
)

func TestParseModelSize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ModelSize
		wantErr bool
	}{
		{"tiny", "tiny", ModelTiny, false},
		{"base", "base", ModelBase, false},
		{"small", "small", ModelSmall, false},
		{"medium", "medium", ModelMedium, false},
		{"large", "large", ModelLarge, false},
		{"unknown size", "huge", "", true},
		{"empty", "", "", true},
		{"wrong case", "Tiny", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModelSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseModelSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownModel) {
					t.Errorf("error = %v, want ErrUnknownModel", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseModelSize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestModelFilename(t *testing.T) {
	tests := []struct {
		model ModelSize
		want  string
	}{
		{ModelTiny, "ggml-tiny.bin"},
		{ModelBase, "ggml-base.bin"},
		{ModelSmall, "ggml-small.bin"},
		{ModelMedium, "ggml-medium.bin"},
		{ModelLarge, "ggml-large-v3.bin"},
	}

	for _, tt := range tests {
		if got := tt.model.Filename(); got != tt.want {
			t.Errorf("Filename(%s) = %v, want %v", tt.model, got, tt.want)
		}
	}
}
