package server

import (
	"encoding/json"
)

// jsonCodec lets connect carry plain Go structs. It is registered under the
// "json" name, so connect clients speaking application/json and
// application/connect+json work unchanged.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
