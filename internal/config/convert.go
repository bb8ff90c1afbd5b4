package config

import (
	"github.com/danmuck/forgesync/internal/protocol"
	"github.com/danmuck/forgesync/internal/protocol/frame"
)

func (c SyncConfig) Limits() frame.Limits {
	return frame.Limits{
		MaxPayloadBytes: c.MaxPayloadBytes,
		MaxDecodedBytes: c.MaxDecodedBytes,
	}
}

func (c SyncConfig) ProtocolOptions() protocol.Options {
	return protocol.Options{
		Backend: c.Backend,
		Frame: frame.Options{
			Checksum: c.Checksum,
			Compress: c.Compression,
			Limits:   c.Limits(),
		},
	}
}
