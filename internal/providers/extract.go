package providers

import (
	"errors"

	"github.com/tidwall/gjson"
)

var ErrMalformedResponse = errors.New("malformed provider response")

// ExtractContent pulls choices[0].message.content out of a chat-completion body.
// Any missing level (or a non-string content) yields "", only a body that is
// not a JSON object is an error.
func ExtractContent(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", ErrMalformedResponse
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return "", ErrMalformedResponse
	}

	content := doc.Get("choices.0.message.content")
	if content.Type != gjson.String {
		return "", nil
	}
	return content.Str, nil
}
