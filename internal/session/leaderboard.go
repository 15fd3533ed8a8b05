package session

import "sort"

type driverSortLessFunc func(driverA, driverB DriverState) bool

// byPosition orders known positions ascending ahead of unknown ones. Ties and
// unknowns fall back to slot index.
func byPosition(driverA, driverB DriverState) bool {
	posA, posB := driverA.Position, driverB.Position

	switch {
	case posA == posB:
		return driverA.Slot < driverB.Slot
	case posA == 0:
		return false
	case posB == 0:
		return true
	default:
		return posA < posB
	}
}

func sortDrivers(drivers []DriverState, less driverSortLessFunc) {
	sort.SliceStable(drivers, func(i, j int) bool {
		return less(drivers[i], drivers[j])
	})
}
