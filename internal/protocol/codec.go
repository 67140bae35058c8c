package protocol

import (
	"fmt"
	"strings"
)

// Codec serialises envelopes and payloads. Implementations must be safe for
// concurrent use.
type Codec interface {
	Name() string
	EncodeEnvelope(env Envelope) ([]byte, error)
	DecodeEnvelope(data []byte) (Envelope, error)
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// CodecByName returns the codec registered under name (json, msgpack).
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSON, nil
	case "msgpack", "messagepack":
		return Msgpack, nil
	}
	return nil, fmt.Errorf("unknown codec %q (expected: json|msgpack)", name)
}

// NewEnvelope encodes payload with c. A nil payload produces an envelope
// without one.
func NewEnvelope(c Codec, typ MessageType, requestID uint64, payload any) (Envelope, error) {
	env := Envelope{Type: typ, RequestID: requestID}
	if payload == nil {
		return env, nil
	}
	data, err := c.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", typ, err)
	}
	env.Payload = data
	return env, nil
}

// DecodePayload decodes env.Payload into v. It reports false, without
// touching v, when the envelope carries no payload.
func DecodePayload(c Codec, env Envelope, v any) (bool, error) {
	if len(env.Payload) == 0 {
		return false, nil
	}
	if err := c.Unmarshal(env.Payload, v); err != nil {
		return false, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return true, nil
}
