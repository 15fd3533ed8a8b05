package f1udp

import "fmt"

type PacketType uint8

const (
	PacketTypeMotion              PacketType = 0
	PacketTypeSession             PacketType = 1
	PacketTypeLapData             PacketType = 2
	PacketTypeEvent               PacketType = 3
	PacketTypeParticipants        PacketType = 4
	PacketTypeCarSetups           PacketType = 5
	PacketTypeCarTelemetry        PacketType = 6
	PacketTypeCarStatus           PacketType = 7
	PacketTypeFinalClassification PacketType = 8
	PacketTypeLobbyInfo           PacketType = 9
	PacketTypeCarDamage           PacketType = 10
	PacketTypeSessionHistory      PacketType = 11
	PacketTypeTyreSets            PacketType = 12
	PacketTypeMotionEx            PacketType = 13
	PacketTypeTimeTrial           PacketType = 14
	PacketTypeLapPositions        PacketType = 15
)

var packetTypeNames = map[PacketType]string{
	PacketTypeMotion:              "Motion",
	PacketTypeSession:             "Session",
	PacketTypeLapData:             "LapData",
	PacketTypeEvent:               "Event",
	PacketTypeParticipants:        "Participants",
	PacketTypeCarSetups:           "CarSetups",
	PacketTypeCarTelemetry:        "CarTelemetry",
	PacketTypeCarStatus:           "CarStatus",
	PacketTypeFinalClassification: "FinalClassification",
	PacketTypeLobbyInfo:           "LobbyInfo",
	PacketTypeCarDamage:           "CarDamage",
	PacketTypeSessionHistory:      "SessionHistory",
	PacketTypeTyreSets:            "TyreSets",
	PacketTypeMotionEx:            "MotionEx",
	PacketTypeTimeTrial:           "TimeTrial",
	PacketTypeLapPositions:        "LapPositions",
}

func (t PacketType) String() string {
	if name, ok := packetTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("Unknown(%d)", uint8(t))
}
