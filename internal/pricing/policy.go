// Package pricing computes quoted prices for a passenger count on a
// flight and fare class: dynamic base-fare adjustment, tax and fee
// assembly, and promotional-code discounting. The engine only reads
// inventory and never mutates it.
package pricing

// Policy holds the dynamic-pricing thresholds and percentage
// adjustments. Keeping them in a value instead of inline constants
// lets the policy be tuned and tested independently of the engine.
//
// Occupancy and time-to-departure adjustments are each resolved to a
// single percentage and applied additively to the base fare, not
// compounded.
type Policy struct {
	// Demand: occupancy is the booked fraction of the fare class.
	HighOccupancy    float64 // occupancy above this raises the fare
	HighOccupancyPct int64
	MidOccupancy     float64
	MidOccupancyPct  int64
	LowOccupancy     float64 // occupancy below this lowers the fare
	LowOccupancyPct  int64

	// Time to departure, in days.
	ImminentDays int64 // departures closer than this are marked up most
	ImminentPct  int64
	NearDays     int64
	NearPct      int64
	FarDays      int64 // departures farther out than this are discounted
	FarPct       int64
}

// DefaultPolicy returns the standard pricing policy.
func DefaultPolicy() Policy {
	return Policy{
		HighOccupancy:    0.8,
		HighOccupancyPct: 20,
		MidOccupancy:     0.6,
		MidOccupancyPct:  10,
		LowOccupancy:     0.3,
		LowOccupancyPct:  -10,

		ImminentDays: 7,
		ImminentPct:  15,
		NearDays:     14,
		NearPct:      8,
		FarDays:      60,
		FarPct:       -5,
	}
}

// DemandPct resolves the occupancy-based adjustment percentage.
func (p Policy) DemandPct(occupancy float64) int64 {
	switch {
	case occupancy > p.HighOccupancy:
		return p.HighOccupancyPct
	case occupancy > p.MidOccupancy:
		return p.MidOccupancyPct
	case occupancy < p.LowOccupancy:
		return p.LowOccupancyPct
	}
	return 0
}

// TimePct resolves the time-to-departure adjustment percentage for a
// departure the given number of days away.
func (p Policy) TimePct(daysUntilDeparture float64) int64 {
	switch {
	case daysUntilDeparture < float64(p.ImminentDays):
		return p.ImminentPct
	case daysUntilDeparture < float64(p.NearDays):
		return p.NearPct
	case daysUntilDeparture > float64(p.FarDays):
		return p.FarPct
	}
	return 0
}
