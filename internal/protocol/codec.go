package protocol

import (
	"fmt"
	"io"

	"github.com/danmuck/forgesync/internal/observability"
	"github.com/danmuck/forgesync/internal/protocol/frame"
	"github.com/danmuck/forgesync/internal/trackable"
	"github.com/rs/zerolog/log"
)

// Options selects the backend and frame features used for encoding.
type Options struct {
	Backend Backend
	Frame   frame.Options
}

func DefaultOptions() Options {
	return Options{Backend: BackendTLV, Frame: frame.DefaultOptions()}
}

// EncodeMessage runs build against a fresh stream writer and writes the
// result as one frame. Nothing is written to w when build fails.
func EncodeMessage(w io.Writer, id uint64, msgType MessageType, opts Options, build func(trackable.Serializer) error) (err error) {
	size := 0
	defer func() {
		observability.RecordMessage(string(opts.Backend), observability.DirectionEncode, size, err)
	}()
	if !msgType.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMessageType, uint32(msgType))
	}
	sw, err := NewWriter(opts.Backend)
	if err != nil {
		return err
	}
	if err := build(sw); err != nil {
		return fmt.Errorf("protocol: build %s message: %w", msgType, err)
	}
	payload, err := sw.Bytes()
	if err != nil {
		return err
	}
	size = len(payload)
	f := frame.Frame{
		Header: frame.Header{
			Magic:       Magic,
			Version:     Version,
			MessageID:   id,
			MessageType: uint32(msgType),
			Flags:       opts.Backend.flags(),
		},
		Payload: payload,
	}
	if err := frame.WriteFrame(w, f, opts.Frame); err != nil {
		return err
	}
	log.Debug().
		Uint64("message_id", id).
		Stringer("type", msgType).
		Str("backend", string(opts.Backend)).
		Int("payload_bytes", size).
		Msg("protocol: message encoded")
	return nil
}

// DecodeMessage reads one frame and hands its stream to apply. Any failure,
// including data left unread by apply, fails the whole message.
func DecodeMessage(r io.Reader, limits frame.Limits, apply func(Envelope, trackable.Deserializer) error) (env Envelope, err error) {
	defer func() {
		backend := string(env.Backend)
		if backend == "" {
			backend = "unknown"
		}
		observability.RecordMessage(backend, observability.DirectionDecode, env.PayloadLen, err)
	}()
	f, err := frame.ReadFrame(r, limits)
	if err != nil {
		return Envelope{}, err
	}
	h := f.Header
	if h.Magic != Magic {
		return Envelope{}, ErrInvalidMagic
	}
	if h.Version != Version {
		return Envelope{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	env = Envelope{
		MessageID:   h.MessageID,
		MessageType: MessageType(h.MessageType),
		Backend:     backendFromFlags(h.Flags),
		Compressed:  h.Flags&frame.FlagCompressed != 0,
		PayloadLen:  len(f.Payload),
	}
	if !env.MessageType.valid() {
		return env, fmt.Errorf("%w: %d", ErrUnknownMessageType, h.MessageType)
	}
	sr, err := NewReader(env.Backend, f.Payload)
	if err != nil {
		return env, err
	}
	if err := apply(env, sr); err != nil {
		log.Warn().Err(err).Uint64("message_id", env.MessageID).Msg("protocol: message discarded")
		return env, err
	}
	if err := closeReader(sr); err != nil {
		return env, err
	}
	return env, nil
}
