package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// JSON is the default codec; envelopes look like
// {"type":"getHoverInfo","requestId":3,"payload":{"index":5}}.
var JSON Codec = jsonCodec{}

type jsonCodec struct{}

type jsonEnvelope struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID json.RawMessage `json:"requestId,omitempty"`
	Version   uint64          `json:"version,omitempty"`
}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) EncodeEnvelope(env Envelope) ([]byte, error) {
	wire := jsonEnvelope{
		Type:    env.Type,
		Payload: env.Payload,
		Version: env.Version,
	}
	switch {
	case len(env.RawID) > 0:
		wire.RequestID = env.RawID
	case env.RequestID != 0:
		wire.RequestID = strconv.AppendUint(nil, env.RequestID, 10)
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return data, nil
}

// DecodeEnvelope probes the fields with gjson instead of unmarshalling, so
// the payload stays raw and unknown fields cost nothing.
func (jsonCodec) DecodeEnvelope(data []byte) (Envelope, error) {
	if !gjson.ValidBytes(data) {
		return Envelope{}, errors.New("decode envelope: invalid json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Envelope{}, errors.New("decode envelope: not an object")
	}
	fields := root.Map()

	typ, ok := fields["type"]
	if !ok || typ.Type != gjson.String {
		return Envelope{}, errors.New("decode envelope: missing type")
	}
	env := Envelope{Type: MessageType(typ.Str)}

	// id непрозрачен: всё, что не uint64, возвращаем как есть
	if id, ok := fields["requestId"]; ok && id.Type != gjson.Null {
		n, err := strconv.ParseUint(id.Raw, 10, 64)
		if id.Type == gjson.Number && err == nil {
			env.RequestID = n
		} else {
			env.RawID = []byte(id.Raw)
		}
	}
	if v, ok := fields["version"]; ok && v.Type == gjson.Number {
		env.Version = v.Uint()
	}
	if p, ok := fields["payload"]; ok && p.Type != gjson.Null {
		env.Payload = []byte(p.Raw)
	}
	return env, nil
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
