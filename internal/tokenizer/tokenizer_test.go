package tokenizer

import (
	"errors"
	"testing"

	"github.com/temirov/codecollector/internal/types"
)

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

type failingCounter struct{}

func (failingCounter) Name() string { return "failing" }

func (failingCounter) CountString(string) (int, error) { return 0, errors.New("encoder unavailable") }

func TestCountCollection(t *testing.T) {
	estimate, err := CountCollection(testCounter{}, types.Collection{Buffer: "# a.py\nx\n\n"})
	if err != nil {
		t.Fatalf("CountCollection error: %v", err)
	}
	if estimate.Tokens != 10 {
		t.Fatalf("expected 10 tokens, got %d", estimate.Tokens)
	}
	if estimate.Model != "stub" {
		t.Fatalf("expected model stub, got %q", estimate.Model)
	}
}

func TestCountCollectionErrors(t *testing.T) {
	if _, err := CountCollection(nil, types.Collection{}); !errors.Is(err, errNilCounter) {
		t.Fatalf("expected nil counter error, got %v", err)
	}
	if _, err := CountCollection(failingCounter{}, types.Collection{Buffer: "x"}); err == nil {
		t.Fatalf("expected counter failure to propagate")
	}
}

func TestResolveModel(t *testing.T) {
	testCases := []struct {
		requested string
		model     string
		known     bool
	}{
		{requested: "", model: "gpt-4o", known: true},
		{requested: "  GPT-4 ", model: "gpt-4", known: true},
		{requested: "text-embedding-3-small", model: "text-embedding-3-small", known: true},
		{requested: "claude-3-5-sonnet", model: "claude-3-5-sonnet", known: false},
		{requested: "llama-3", model: "llama-3", known: false},
	}
	for _, testCase := range testCases {
		model, known := resolveModel(testCase.requested)
		if model != testCase.model || known != testCase.known {
			t.Fatalf("resolveModel(%q) = (%q, %v), want (%q, %v)", testCase.requested, model, known, testCase.model, testCase.known)
		}
	}
}

func TestOpenAICounterRequiresEncoding(t *testing.T) {
	if _, err := (openAICounter{name: "empty"}).CountString("x"); !errors.Is(err, errNilEncoding) {
		t.Fatalf("expected nil encoding error, got %v", err)
	}
}

func TestNewCounterUsesEmbeddedEncodings(t *testing.T) {
	testCases := []struct {
		model        string
		expectedName string
	}{
		{model: "gpt-4", expectedName: "gpt-4"},
		{model: "llama-3", expectedName: "cl100k_base"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.model, func(t *testing.T) {
			counter, name, err := NewCounter(Config{Model: testCase.model})
			if err != nil {
				t.Fatalf("NewCounter(%q) error: %v", testCase.model, err)
			}
			if name != testCase.expectedName || counter.Name() != testCase.expectedName {
				t.Fatalf("expected encoding %q, got %q and %q", testCase.expectedName, name, counter.Name())
			}
			tokens, countErr := counter.CountString("hello world")
			if countErr != nil {
				t.Fatalf("CountString error: %v", countErr)
			}
			if tokens != 2 {
				t.Fatalf("expected 2 tokens, got %d", tokens)
			}
		})
	}
}
