package f1udp

type CarStatusRecord struct {
	Index int

	TractionControl   Reading[uint8]
	AntiLockBrakes    Reading[uint8]
	FuelMix           Reading[uint8]
	FrontBrakeBias    Reading[uint8]
	PitLimiter        Reading[uint8]
	FuelInTank        Reading[float32] // kg
	FuelCapacity      Reading[float32]
	FuelRemainingLaps Reading[float32]
	MaxRPM            Reading[uint16]
	IdleRPM           Reading[uint16]
	MaxGears          Reading[uint8]
	DRSAllowed        Reading[uint8]
	ActualCompound    Reading[TyreCompound]
	VisualCompound    Reading[TyreCompound]
	TyresAgeLaps      Reading[uint8]
	FIAFlag           Reading[FIAFlag]
	EnginePowerICE    Reading[float32] // W
	EnginePowerMGUK   Reading[float32]
	ERSStoreEnergy    Reading[float32] // J
	ERSDeployMode     Reading[uint8]
	NetworkPaused     Reading[uint8]

	outOfRange []string
}

func (CarStatusRecord) PacketType() PacketType {
	return PacketTypeCarStatus
}

func (r CarStatusRecord) Slot() int {
	return r.Index
}

func (r CarStatusRecord) OutOfRange() []string {
	return r.outOfRange
}

func DecodeCarStatus(payload []byte, _ Envelope) ([]Record, error) {
	var rows [MaxSlots]CarStatusWire

	if err := readSlots(payload, CarStatusWidth, "car status", &rows); err != nil {
		return nil, err
	}

	records := make([]Record, 0, MaxSlots)

	for i, w := range rows {
		records = append(records, newCarStatusRecord(i, w))
	}

	return records, nil
}

func newCarStatusRecord(index int, w CarStatusWire) CarStatusRecord {
	var c fieldCheck

	r := CarStatusRecord{
		Index:             index,
		TractionControl:   inRange(&c, "traction_control", w.TractionControl, 0, 2),
		AntiLockBrakes:    inRange(&c, "anti_lock_brakes", w.AntiLockBrakes, 0, 1),
		FuelMix:           inRange(&c, "fuel_mix", w.FuelMix, 0, 3),
		FrontBrakeBias:    inRange(&c, "front_brake_bias", w.FrontBrakeBias, 0, 100),
		PitLimiter:        inRange(&c, "pit_limiter", w.PitLimiterStatus, 0, 1),
		FuelInTank:        inRange(&c, "fuel_in_tank", w.FuelInTank, 0, 150),
		FuelCapacity:      inRange(&c, "fuel_capacity", w.FuelCapacity, 0, 150),
		FuelRemainingLaps: inRange(&c, "fuel_remaining_laps", w.FuelRemainingLaps, -100, 100),
		MaxRPM:            inRange(&c, "max_rpm", w.MaxRPM, 0, 20000),
		IdleRPM:           inRange(&c, "idle_rpm", w.IdleRPM, 0, 20000),
		MaxGears:          inRange(&c, "max_gears", w.MaxGears, 0, 9),
		DRSAllowed:        inRange(&c, "drs_allowed", w.DRSAllowed, 0, 1),
		ActualCompound:    inSet(&c, "actual_tyre_compound", TyreCompound(w.ActualTyreCompound), actualTyreCompounds),
		VisualCompound:    inSet(&c, "visual_tyre_compound", TyreCompound(w.VisualTyreCompound), visualTyreCompounds),
		TyresAgeLaps:      inRange(&c, "tyres_age_laps", w.TyresAgeLaps, 0, 200),
		FIAFlag:           inSet(&c, "vehicle_fia_flags", FIAFlag(w.VehicleFIAFlags), fiaFlagNames),
		EnginePowerICE:    inRange(&c, "engine_power_ice", w.EnginePowerICE, 0, 1e6),
		EnginePowerMGUK:   inRange(&c, "engine_power_mguk", w.EnginePowerMGUK, 0, 1e6),
		ERSStoreEnergy:    inRange(&c, "ers_store_energy", w.ERSStoreEnergy, 0, 4e6),
		ERSDeployMode:     inRange(&c, "ers_deploy_mode", w.ERSDeployMode, 0, 3),
		NetworkPaused:     inRange(&c, "network_paused", w.NetworkPaused, 0, 1),
	}

	r.outOfRange = c.outOfRange

	return r
}
