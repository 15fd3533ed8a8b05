package f1udp

import "github.com/pkg/errors"

var (
	// ErrTruncated is returned when a datagram is shorter than the envelope or
	// the payload shorter than its packet type requires.
	ErrTruncated = errors.New("f1udp: truncated packet")

	// ErrProtocolMismatch is returned when the envelope format tag is not the
	// supported one. Foreign traffic on the same port lands here too.
	ErrProtocolMismatch = errors.New("f1udp: unsupported packet format")

	// ErrIgnoredPacketType is returned for packet types that have no payload
	// decoder. The envelope itself was valid.
	ErrIgnoredPacketType = errors.New("f1udp: packet type not decoded")
)
