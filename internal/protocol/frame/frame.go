package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/spaolacci/murmur3"
)

const (
	FixedHeaderLen uint16 = 32
	ChecksumLen    uint16 = 8
	FlagChecksum   uint32 = 0x01
	FlagCompressed uint32 = 0x02
)

var (
	ErrShortHeader       = errors.New("frame: short fixed header")
	ErrHeaderLenTooSmall = errors.New("frame: header_len smaller than fixed header")
	ErrHeaderLenMismatch = errors.New("frame: header_len does not match flags")
	ErrPayloadTooLarge   = errors.New("frame: payload too large")
	ErrDecodedTooLarge   = errors.New("frame: decompressed payload too large")
	ErrChecksumMismatch  = errors.New("frame: checksum mismatch")
	ErrTruncatedPayload  = errors.New("frame: truncated payload")
)

// Header is the fixed wire header.
type Header struct {
	Magic       uint32
	Version     uint16
	HeaderLen   uint16
	MessageID   uint64
	MessageType uint32
	Flags       uint32
	PayloadLen  uint64
}

// Frame is one complete synchronization message. Payload is always the
// uncompressed stream body.
type Frame struct {
	Header  Header
	Payload []byte
}

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxPayloadBytes uint64
	MaxDecodedBytes uint64
}

func DefaultLimits() Limits {
	return Limits{
		MaxPayloadBytes: 8 * 1024 * 1024,
		MaxDecodedBytes: 32 * 1024 * 1024,
	}
}

// Options selects optional frame features on write.
type Options struct {
	Checksum bool
	Compress bool
	Limits   Limits
}

func DefaultOptions() Options {
	return Options{Checksum: true, Limits: DefaultLimits()}
}

var (
	encoderOnce sync.Once
	encoder     *zstd.Encoder
	encoderErr  error
)

func zstdEncoder() (*zstd.Encoder, error) {
	encoderOnce.Do(func() {
		encoder, encoderErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	})
	return encoder, encoderErr
}

func decompress(payload []byte, limit uint64) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(payload),
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("frame: zstd reader: %w", err)
	}
	defer dec.Close()
	out, err := io.ReadAll(io.LimitReader(dec, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("frame: zstd decode: %w", err)
	}
	if uint64(len(out)) > limit {
		return nil, ErrDecodedTooLarge
	}
	return out, nil
}

func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	var fixed [FixedHeaderLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}

	h, err := DecodeHeader(fixed[:])
	if err != nil {
		return Frame{}, err
	}

	if h.HeaderLen < FixedHeaderLen {
		return Frame{}, ErrHeaderLenTooSmall
	}
	extLen := h.HeaderLen - FixedHeaderLen
	hasChecksum := h.Flags&FlagChecksum != 0
	if (hasChecksum && extLen != ChecksumLen) || (!hasChecksum && extLen != 0) {
		return Frame{}, ErrHeaderLenMismatch
	}
	if h.PayloadLen > limits.MaxPayloadBytes {
		return Frame{}, ErrPayloadTooLarge
	}

	var sum uint64
	if hasChecksum {
		var ext [ChecksumLen]byte
		if _, err := io.ReadFull(r, ext[:]); err != nil {
			return Frame{}, ErrShortHeader
		}
		sum = binary.BigEndian.Uint64(ext[:])
	}

	payload := make([]byte, h.PayloadLen)
	if h.PayloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return Frame{}, ErrTruncatedPayload
		}
	}
	if hasChecksum && murmur3.Sum64(payload) != sum {
		return Frame{}, ErrChecksumMismatch
	}
	if h.Flags&FlagCompressed != 0 {
		payload, err = decompress(payload, limits.MaxDecodedBytes)
		if err != nil {
			return Frame{}, err
		}
	} else if uint64(len(payload)) > limits.MaxDecodedBytes {
		return Frame{}, ErrDecodedTooLarge
	}

	return Frame{Header: h, Payload: payload}, nil
}

func WriteFrame(w io.Writer, f Frame, opts Options) error {
	if uint64(len(f.Payload)) > opts.Limits.MaxDecodedBytes {
		return ErrDecodedTooLarge
	}
	h := f.Header
	h.Flags &^= FlagChecksum | FlagCompressed
	payload := f.Payload
	if opts.Compress {
		enc, err := zstdEncoder()
		if err != nil {
			return fmt.Errorf("frame: zstd writer: %w", err)
		}
		payload = enc.EncodeAll(f.Payload, nil)
		h.Flags |= FlagCompressed
	}
	payloadLen := uint64(len(payload))
	if payloadLen > opts.Limits.MaxPayloadBytes {
		return ErrPayloadTooLarge
	}

	h.HeaderLen = FixedHeaderLen
	if opts.Checksum {
		h.HeaderLen += ChecksumLen
		h.Flags |= FlagChecksum
	}
	h.PayloadLen = payloadLen

	hb := EncodeHeader(h)
	if opts.Checksum {
		hb = binary.BigEndian.AppendUint64(hb, murmur3.Sum64(payload))
	}
	if _, err := w.Write(hb); err != nil {
		return err
	}
	if payloadLen > 0 {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return nil
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, FixedHeaderLen)
	binary.BigEndian.PutUint32(buf[0:4], h.Magic)
	binary.BigEndian.PutUint16(buf[4:6], h.Version)
	binary.BigEndian.PutUint16(buf[6:8], h.HeaderLen)
	binary.BigEndian.PutUint64(buf[8:16], h.MessageID)
	binary.BigEndian.PutUint32(buf[16:20], h.MessageType)
	binary.BigEndian.PutUint32(buf[20:24], h.Flags)
	binary.BigEndian.PutUint64(buf[24:32], h.PayloadLen)
	return buf
}

func DecodeHeader(b []byte) (Header, error) {
	if len(b) != int(FixedHeaderLen) {
		return Header{}, fmt.Errorf("frame: invalid fixed header length: %d", len(b))
	}
	return Header{
		Magic:       binary.BigEndian.Uint32(b[0:4]),
		Version:     binary.BigEndian.Uint16(b[4:6]),
		HeaderLen:   binary.BigEndian.Uint16(b[6:8]),
		MessageID:   binary.BigEndian.Uint64(b[8:16]),
		MessageType: binary.BigEndian.Uint32(b[16:20]),
		Flags:       binary.BigEndian.Uint32(b[20:24]),
		PayloadLen:  binary.BigEndian.Uint64(b[24:32]),
	}, nil
}
