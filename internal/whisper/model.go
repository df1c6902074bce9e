package whisper

import "fmt"

// ModelSize identifies a whisper.cpp ggml model variant.
type ModelSize string

const (
	ModelTiny   ModelSize = "tiny"
	ModelBase   ModelSize = "base"
	ModelSmall  ModelSize = "small"
	ModelMedium ModelSize = "medium"
	ModelLarge  ModelSize = "large"
)

// modelBaseURL is where missing model files are fetched from.
const modelBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/"

// modelFilenames maps model size to its multilingual ggml file name.
// The large selector resolves to the current v3 build.
var modelFilenames = map[ModelSize]string{
	ModelTiny:   "ggml-tiny.bin",
	ModelBase:   "ggml-base.bin",
	ModelSmall:  "ggml-small.bin",
	ModelMedium: "ggml-medium.bin",
	ModelLarge:  "ggml-large-v3.bin",
}

// ParseModelSize validates a model selector string.
func ParseModelSize(s string) (ModelSize, error) {
	m := ModelSize(s)
	if _, ok := modelFilenames[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
	}
	return m, nil
}

// Filename returns the ggml file name for the model.
func (m ModelSize) Filename() string {
	return modelFilenames[m]
}
