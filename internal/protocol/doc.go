// Package protocol owns the sync message wire contract.
//
// Ownership boundary:
// - stream backend selection (tlv, cbor)
// - message envelope: magic, version, message type, backend flag
// - framing via frame, including checksum and compression options
package protocol
