package telemetry

import (
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

type statistics struct {
	bytesRead        atomic.Uint64
	datagramsRead    atomic.Uint64
	datagramsDropped atomic.Uint64
}

func (s *statistics) received(n int) {
	s.bytesRead.Add(uint64(n))
	s.datagramsRead.Add(1)
}

func (s *statistics) dropped() {
	s.datagramsDropped.Add(1)
}

func (s *statistics) print(logger Logger) {
	read := s.datagramsRead.Load()
	bytes := s.bytesRead.Load()

	var avg uint64

	if read > 0 {
		avg = bytes / read
	}

	logger.Infof("Statistics: UDP: %s datagrams received (%s), %s bytes avg size, %s dropped.",
		humanize.Comma(int64(read)), humanize.Bytes(bytes), humanize.Comma(int64(avg)), humanize.Comma(int64(s.datagramsDropped.Load())))
}
