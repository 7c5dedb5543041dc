package model

import (
	"encoding/json"
)

// Payload is a pretty-printed JSON document ready to be written. A nil
// Payload means the stage produced nothing; an encoded empty list is not nil.
type Payload []byte

// Available reports whether the payload should be written.
func (p Payload) Available() bool { return p != nil }

// Encode renders v with four-space indentation and a trailing newline.
func Encode(v any) (Payload, error) {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, err
	}
	return Payload(append(b, '\n')), nil
}

// CollectionResult holds the three independent outputs of a run.
type CollectionResult struct {
	Config  Payload
	Streams Payload
	Logs    Payload
}
