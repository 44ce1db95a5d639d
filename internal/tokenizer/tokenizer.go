// Package tokenizer estimates how many model tokens the collected buffer occupies.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"

	errorInitializeEncodingFormat = "initialize tokenizer %s: %w"
)

var openAIModelPrefixes = []string{
	"gpt-",
	"o1",
	"o3",
	"o4",
	"text-embedding",
	"davinci",
	"curie",
	"babbage",
	"ada",
	"code-",
}

// NewCounter returns a tiktoken Counter for the requested model along with the name of the
// encoding actually used. Models tiktoken does not know fall back to cl100k_base. Encodings
// are read from tables embedded in the binary.
func NewCounter(cfg Config) (Counter, string, error) {
	useEmbeddedEncodings()
	model, known := resolveModel(cfg.Model)
	if known {
		encoding, err := tiktoken.EncodingForModel(model)
		if err == nil && encoding != nil {
			return openAICounter{encoding: encoding, name: model}, model, nil
		}
	}
	fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackErr != nil {
		return nil, "", fmt.Errorf(errorInitializeEncodingFormat, defaultEncodingName, fallbackErr)
	}
	return openAICounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

// resolveModel lowercases the requested model, applies the default, and reports whether
// tiktoken is expected to have a model-specific encoding for it.
func resolveModel(requested string) (string, bool) {
	model := strings.ToLower(strings.TrimSpace(requested))
	if model == "" {
		model = defaultModel
	}
	for _, prefix := range openAIModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return model, true
		}
	}
	return model, false
}
