package f1udp

import "github.com/pkg/errors"

type payloadDecoder func(d *Decoder, payload []byte, env Envelope) ([]Record, error)

var payloadDecoders = map[PacketType]payloadDecoder{
	PacketTypeSession: func(_ *Decoder, payload []byte, env Envelope) ([]Record, error) {
		return DecodeSession(payload, env)
	},
	PacketTypeLapData: func(_ *Decoder, payload []byte, env Envelope) ([]Record, error) {
		return DecodeLapData(payload, env)
	},
	PacketTypeParticipants: (*Decoder).DecodeParticipants,
	PacketTypeCarTelemetry: func(_ *Decoder, payload []byte, env Envelope) ([]Record, error) {
		return DecodeCarTelemetry(payload, env)
	},
	PacketTypeCarStatus: func(_ *Decoder, payload []byte, env Envelope) ([]Record, error) {
		return DecodeCarStatus(payload, env)
	},
}

// Decoder turns whole datagrams into records. It holds no per-packet state
// and is safe for concurrent use.
type Decoder struct {
	codes NameCodes
}

func NewDecoder(codes NameCodes) *Decoder {
	if codes == nil {
		codes = DefaultNameCodes
	}

	return &Decoder{codes: codes}
}

var DefaultDecoder = NewDecoder(DefaultNameCodes)

// Decodes reports whether packets of type t produce records.
func Decodes(t PacketType) bool {
	_, ok := payloadDecoders[t]

	return ok
}

// Decode parses the envelope and dispatches the payload on its packet type.
// Types without a decoder return the envelope and ErrIgnoredPacketType.
// Errors are never partial: either every record of the packet is returned or
// none is.
func (d *Decoder) Decode(datagram []byte) (Envelope, []Record, error) {
	env, err := DecodeEnvelope(datagram)

	if err != nil {
		return env, nil, err
	}

	decode, ok := payloadDecoders[env.PacketType]

	if !ok {
		return env, nil, errors.Wrapf(ErrIgnoredPacketType, "%s", env.PacketType)
	}

	records, err := decode(d, Payload(datagram), env)

	if err != nil {
		return env, nil, err
	}

	return env, records, nil
}
