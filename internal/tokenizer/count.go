package tokenizer

import (
	"errors"
	"fmt"

	"github.com/temirov/unmix/internal/utils"
)

const countTokensErrorFormat = "count tokens with %s: %w"

var errNilCounter = errors.New("nil tokenizer counter")

// CountResult is the token count of one restored file. Counted is false for content that is not
// text, such as a decoded base64 payload.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes counts the tokens of restored file content.
func CountBytes(counter Counter, content []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errNilCounter
	}
	if utils.IsBinary(content) {
		return CountResult{}, nil
	}
	tokens, countError := counter.CountString(string(content))
	if countError != nil {
		return CountResult{}, fmt.Errorf(countTokensErrorFormat, counter.Name(), countError)
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}
