package protocol

import (
	"errors"
	"fmt"

	"github.com/danmuck/forgesync/internal/protocol/cborstream"
	"github.com/danmuck/forgesync/internal/protocol/tlv"
	"github.com/danmuck/forgesync/internal/trackable"
)

// StreamWriter is a trackable.Serializer that can produce its payload.
type StreamWriter interface {
	trackable.Serializer
	Bytes() ([]byte, error)
}

// StreamReader is a trackable.Deserializer that can report unread data.
type StreamReader interface {
	trackable.Deserializer
	Close() error
}

func NewWriter(b Backend) (StreamWriter, error) {
	switch b {
	case BackendTLV:
		return tlv.NewWriter(), nil
	case BackendCBOR:
		return cborstream.NewWriter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, b)
	}
}

func NewReader(b Backend, payload []byte) (StreamReader, error) {
	switch b {
	case BackendTLV:
		r, err := tlv.NewReader(payload)
		if err != nil {
			return nil, err
		}
		return r, nil
	case BackendCBOR:
		return cborstream.NewReader(payload), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, b)
	}
}

// closeReader maps backend trailing-data errors onto ErrTrailingData.
func closeReader(r StreamReader) error {
	err := r.Close()
	if errors.Is(err, tlv.ErrTrailingFields) || errors.Is(err, cborstream.ErrTrailingData) {
		return fmt.Errorf("%w: %w", ErrTrailingData, err)
	}
	return err
}
