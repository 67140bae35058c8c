// Package protocol defines the messages exchanged between the editor host
// and the analysis engine, and the codecs that put them on the wire.
package protocol

import (
	"errors"
	"fmt"
)

// MessageType names a protocol message. The same type is used for a
// request and its response.
type MessageType string

const (
	TypeUpdateText   MessageType = "updateText"
	TypeUpdate       MessageType = "update"
	TypeHover        MessageType = "getHoverInfo"
	TypeDefinition   MessageType = "getDefinitionLocation"
	TypeOccurrences  MessageType = "getOccurrences"
	TypeCompletions  MessageType = "getCompletions"
	TypeWordBoundary MessageType = "getNextWordBoundary"
	TypeShutdown     MessageType = "shutdown"
)

// ErrUnknownType is returned for message types outside the protocol.
var ErrUnknownType = errors.New("unknown message type")

var knownTypes = map[MessageType]bool{
	TypeUpdateText:   true,
	TypeUpdate:       true,
	TypeHover:        true,
	TypeDefinition:   true,
	TypeOccurrences:  true,
	TypeCompletions:  true,
	TypeWordBoundary: true,
	TypeShutdown:     true,
}

// ParseType validates s as a protocol message type.
func ParseType(s string) (MessageType, error) {
	t := MessageType(s)
	if !knownTypes[t] {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// IsQuery reports whether t expects a correlated response.
func (t MessageType) IsQuery() bool {
	switch t {
	case TypeHover, TypeDefinition, TypeOccurrences, TypeCompletions, TypeWordBoundary, TypeShutdown:
		return true
	}
	return false
}

// Envelope wraps every message. Payload is already encoded with the same
// codec as the envelope; nil means no payload (or a null result).
//
// RequestID 0 means "no request": updateText and the unsolicited update push.
// Version is the snapshot version the engine answered against; hosts send 0.
//
// RawID keeps a JSON id that is not a plain unsigned integer (fractions,
// strings) byte for byte. RequestID is 0 then, and replies echo RawID.
type Envelope struct {
	Type      MessageType
	RequestID uint64
	RawID     []byte
	Version   uint64
	Payload   []byte
}

func (e Envelope) String() string {
	if len(e.RawID) > 0 {
		return fmt.Sprintf("%s#%s", e.Type, e.RawID)
	}
	if e.RequestID == 0 {
		return string(e.Type)
	}
	return fmt.Sprintf("%s#%d", e.Type, e.RequestID)
}
