package f1udp

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Packet reads and writes little-endian fixed-layout values. Every read is
// bounds checked by encoding/binary, so a short buffer surfaces as an error
// rather than zeroed fields.
type Packet struct {
	buf *bytes.Buffer
}

func NewPacket(b []byte) *Packet {
	return &Packet{
		buf: bytes.NewBuffer(b),
	}
}

func (p *Packet) Write(val interface{}) {
	err := binary.Write(p.buf, binary.LittleEndian, val)

	if err != nil {
		logrus.WithError(err).Errorf("Could not Write: %v", val)
	}
}

func (p *Packet) Read(out interface{}) error {
	if err := binary.Read(p.buf, binary.LittleEndian, out); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errors.Wrap(ErrTruncated, err.Error())
		}

		return err
	}

	return nil
}

func (p *Packet) Bytes() []byte {
	return p.buf.Bytes()
}
