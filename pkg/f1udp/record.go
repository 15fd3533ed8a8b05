package f1udp

// Record is one decoded unit of a payload. Per-car records also implement
// SlotRecord.
type Record interface {
	PacketType() PacketType
}

type SlotRecord interface {
	Record
	Slot() int
}

// FieldValidator is implemented by records whose scalar fields are range
// checked individually.
type FieldValidator interface {
	OutOfRange() []string
}
