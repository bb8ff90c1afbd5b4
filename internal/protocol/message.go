package protocol

import (
	"fmt"
	"strings"
)

const (
	Magic   uint32 = 0x46534E43 // "FSNC"
	Version uint16 = 1
)

// FlagBackendCBOR marks a payload written by the cbor backend. Bits below
// 0x100 belong to frame.
const FlagBackendCBOR uint32 = 0x100

type MessageType uint32

const (
	MessageFull  MessageType = 1
	MessageDelta MessageType = 2
)

func (t MessageType) String() string {
	switch t {
	case MessageFull:
		return "full"
	case MessageDelta:
		return "delta"
	default:
		return fmt.Sprintf("message(%d)", uint32(t))
	}
}

func (t MessageType) valid() bool {
	return t == MessageFull || t == MessageDelta
}

// Backend names a stream encoding.
type Backend string

const (
	BackendTLV  Backend = "tlv"
	BackendCBOR Backend = "cbor"
)

func ParseBackend(raw string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(raw))); b {
	case BackendTLV, BackendCBOR:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, raw)
	}
}

func backendFromFlags(flags uint32) Backend {
	if flags&FlagBackendCBOR != 0 {
		return BackendCBOR
	}
	return BackendTLV
}

func (b Backend) flags() uint32 {
	if b == BackendCBOR {
		return FlagBackendCBOR
	}
	return 0
}

// Envelope describes one decoded message.
type Envelope struct {
	MessageID   uint64
	MessageType MessageType
	Backend     Backend
	Compressed  bool
	PayloadLen  int
}
