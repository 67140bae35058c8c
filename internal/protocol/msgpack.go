package protocol

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack is the compact binary codec. Payload structs reuse their json
// tags, so both codecs agree on field names.
var Msgpack Codec = msgpackCodec{}

type msgpackCodec struct{}

type msgpackEnvelope struct {
	Type      MessageType        `msgpack:"type"`
	Payload   msgpack.RawMessage `msgpack:"payload,omitempty"`
	RequestID uint64             `msgpack:"requestId,omitempty"`
	Version   uint64             `msgpack:"version,omitempty"`
}

func (msgpackCodec) Name() string { return "msgpack" }

func (msgpackCodec) EncodeEnvelope(env Envelope) ([]byte, error) {
	data, err := msgpack.Marshal(&msgpackEnvelope{
		Type:      env.Type,
		Payload:   env.Payload,
		RequestID: env.RequestID,
		Version:   env.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return data, nil
}

func (msgpackCodec) DecodeEnvelope(data []byte) (Envelope, error) {
	var wire msgpackEnvelope
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if wire.Type == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing type")
	}
	env := Envelope{
		Type:      wire.Type,
		RequestID: wire.RequestID,
		Version:   wire.Version,
	}
	// nil кодируется как 0xc0
	if len(wire.Payload) > 0 && !(len(wire.Payload) == 1 && wire.Payload[0] == msgpackNil) {
		env.Payload = []byte(wire.Payload)
	}
	return env, nil
}

const msgpackNil = 0xc0

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
