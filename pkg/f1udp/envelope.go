package f1udp

import "github.com/pkg/errors"

const (
	// FormatTag is the only packet format accepted (F1 24).
	FormatTag uint16 = 2024

	EnvelopeSize = 29

	// MaxSlots is the number of car slots addressed by every per-car payload.
	MaxSlots = 22

	// NoSlot marks an unset player slot (spectating, menus).
	NoSlot uint8 = 255
)

// Envelope is the fixed header that prefixes every packet. Field order and
// widths match the wire exactly, so it is read in one binary.Read.
type Envelope struct {
	FormatTag           uint16
	GameYear            uint8
	GameMajor           uint8
	GameMinor           uint8
	PacketVersion       uint8
	PacketType          PacketType
	SessionID           uint64
	SessionTime         float32
	FrameID             uint32
	OverallFrameID      uint32
	PlayerSlot          uint8
	SecondaryPlayerSlot uint8
}

// DecodeEnvelope validates and parses the envelope. Nothing past the first
// EnvelopeSize bytes is looked at. On a format mismatch the parsed envelope
// is still returned so callers can log what arrived.
func DecodeEnvelope(b []byte) (Envelope, error) {
	var env Envelope

	if len(b) < EnvelopeSize {
		return env, errors.Wrapf(ErrTruncated, "envelope: need %d bytes, got %d", EnvelopeSize, len(b))
	}

	if err := NewPacket(b[:EnvelopeSize]).Read(&env); err != nil {
		return env, errors.Wrap(err, "envelope")
	}

	if env.FormatTag != FormatTag {
		return env, errors.Wrapf(ErrProtocolMismatch, "format tag %d, want %d", env.FormatTag, FormatTag)
	}

	return env, nil
}

// Payload returns the bytes following the envelope.
func Payload(b []byte) []byte {
	if len(b) < EnvelopeSize {
		return nil
	}

	return b[EnvelopeSize:]
}
