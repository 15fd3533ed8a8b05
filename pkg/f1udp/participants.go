package f1udp

import "github.com/pkg/errors"

type ParticipantRecord struct {
	Index int

	// Name is the cleaned display name, Code the short code derived from it.
	Name string
	Code string

	AIControlled    bool
	DriverID        int
	NetworkID       int
	TeamID          int
	MyTeam          bool
	RaceNumber      int
	Nationality     int
	TelemetryPublic bool
	ShowOnlineNames bool
	Platform        int
}

func (ParticipantRecord) PacketType() PacketType {
	return PacketTypeParticipants
}

func (r ParticipantRecord) Slot() int {
	return r.Index
}

// DecodeParticipants decodes the participant table. Slots beyond the active
// car count are not emitted.
func (d *Decoder) DecodeParticipants(payload []byte, _ Envelope) ([]Record, error) {
	if len(payload) < 1 {
		return nil, errors.Wrap(ErrTruncated, "participants: missing car count")
	}

	var rows [MaxSlots]ParticipantWire

	if err := readSlots(payload[1:], ParticipantWidth, "participants", &rows); err != nil {
		return nil, err
	}

	numActive := int(payload[0])

	if numActive > MaxSlots {
		numActive = MaxSlots
	}

	records := make([]Record, 0, numActive)

	for i := 0; i < numActive; i++ {
		w := rows[i]
		name := CleanName(w.Name[:])

		records = append(records, ParticipantRecord{
			Index:           i,
			Name:            name,
			Code:            d.codes.Code(name, i),
			AIControlled:    w.AIControlled != 0,
			DriverID:        int(w.DriverID),
			NetworkID:       int(w.NetworkID),
			TeamID:          int(w.TeamID),
			MyTeam:          w.MyTeam != 0,
			RaceNumber:      int(w.RaceNumber),
			Nationality:     int(w.Nationality),
			TelemetryPublic: w.YourTelemetry != 0,
			ShowOnlineNames: w.ShowOnlineNames != 0,
			Platform:        int(w.Platform),
		})
	}

	return records, nil
}
