package telemetry

import (
	"strconv"
	"strings"

	"github.com/lorenzosaino/go-sysctl"
)

const receiveBufferMax = "net.core.rmem_max"

// checkReceiveBuffer warns when the requested socket receive buffer is larger
// than the kernel allows. Where sysctl is unavailable nothing is checked.
func checkReceiveBuffer(size int, logger Logger) {
	value, err := sysctl.Get(receiveBufferMax)

	if err != nil {
		return
	}

	limit, err := strconv.Atoi(strings.TrimSpace(value))

	if err != nil {
		return
	}

	if size > limit {
		logger.Warnf("receive_buffer_size of %d bytes exceeds %s (%d), the kernel will cap it", size, receiveBufferMax, limit)
	}
}
