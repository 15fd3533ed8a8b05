package telemetry

import "fmt"

// TransportError means the UDP socket failed outside of a read timeout.
// Nothing more will be received; the owner should treat it as fatal.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport lost: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Cause() error {
	return e.Err
}

type groupedError []error

func (e groupedError) Err() error {
	for _, err := range e {
		if err != nil {
			return err
		}
	}

	return nil
}
