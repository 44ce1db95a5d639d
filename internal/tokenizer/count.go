package tokenizer

import (
	"errors"

	"github.com/temirov/codecollector/internal/types"
)

// Estimate is the token count of a collection under one encoding.
type Estimate struct {
	Tokens int
	Model  string
}

var errNilCounter = errors.New("nil tokenizer counter")

// CountCollection estimates tokens for the aggregate buffer of collection.
func CountCollection(counter Counter, collection types.Collection) (Estimate, error) {
	if counter == nil {
		return Estimate{}, errNilCounter
	}
	tokens, err := counter.CountString(collection.Buffer)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{Tokens: tokens, Model: counter.Name()}, nil
}
