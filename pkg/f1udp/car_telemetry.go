package f1udp

const (
	WheelRearLeft = iota
	WheelRearRight
	WheelFrontLeft
	WheelFrontRight
)

// CarTelemetryRecord holds one car's telemetry. Each field is checked against
// a plausible physical range on its own; a bad field does not void the rest.
type CarTelemetryRecord struct {
	Index int

	Speed                   Reading[uint16] // km/h
	Throttle                Reading[float32]
	Steer                   Reading[float32]
	Brake                   Reading[float32]
	Clutch                  Reading[uint8]
	Gear                    Reading[int8]
	EngineRPM               Reading[uint16]
	DRS                     Reading[uint8]
	RevLightsPercent        Reading[uint8]
	BrakesTemperature       [4]Reading[uint16]
	TyresSurfaceTemperature [4]Reading[uint8]
	TyresInnerTemperature   [4]Reading[uint8]
	EngineTemperature       Reading[uint16]
	TyresPressure           [4]Reading[float32] // psi

	outOfRange []string
}

func (CarTelemetryRecord) PacketType() PacketType {
	return PacketTypeCarTelemetry
}

func (r CarTelemetryRecord) Slot() int {
	return r.Index
}

func (r CarTelemetryRecord) OutOfRange() []string {
	return r.outOfRange
}

func DecodeCarTelemetry(payload []byte, _ Envelope) ([]Record, error) {
	var rows [MaxSlots]CarTelemetryWire

	if err := readSlots(payload, CarTelemetryWidth, "car telemetry", &rows); err != nil {
		return nil, err
	}

	records := make([]Record, 0, MaxSlots)

	for i, w := range rows {
		records = append(records, newCarTelemetryRecord(i, w))
	}

	return records, nil
}

func newCarTelemetryRecord(index int, w CarTelemetryWire) CarTelemetryRecord {
	var c fieldCheck

	r := CarTelemetryRecord{
		Index:                   index,
		Speed:                   inRange(&c, "speed", w.Speed, 0, 400),
		Throttle:                inRange(&c, "throttle", w.Throttle, 0, 1),
		Steer:                   inRange(&c, "steer", w.Steer, -1, 1),
		Brake:                   inRange(&c, "brake", w.Brake, 0, 1),
		Clutch:                  inRange(&c, "clutch", w.Clutch, 0, 100),
		Gear:                    inRange(&c, "gear", w.Gear, -1, 8),
		EngineRPM:               inRange(&c, "engine_rpm", w.EngineRPM, 0, 20000),
		DRS:                     inRange(&c, "drs", w.DRS, 0, 1),
		RevLightsPercent:        inRange(&c, "rev_lights_percent", w.RevLightsPercent, 0, 100),
		BrakesTemperature:       inRange4(&c, "brakes_temperature", w.BrakesTemperature, 0, 2000),
		TyresSurfaceTemperature: inRange4(&c, "tyres_surface_temperature", w.TyresSurfaceTemperature, 0, 200),
		TyresInnerTemperature:   inRange4(&c, "tyres_inner_temperature", w.TyresInnerTemperature, 0, 200),
		EngineTemperature:       inRange(&c, "engine_temperature", w.EngineTemperature, 0, 200),
		TyresPressure:           inRange4(&c, "tyres_pressure", w.TyresPressure, 0, 40),
	}

	r.outOfRange = c.outOfRange

	return r
}
