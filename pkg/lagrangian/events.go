package lagrangian

import "time"

// Event marks a bar where momentum clears both thresholds: the signal is
// above SignalThreshold and the velocity is above VelocityThreshold, both
// strictly. The close, signal and velocity at the bar ride along for
// reporting and plotting.
type Event struct {
	Index    int
	Time     time.Time
	Close    float64
	Signal   float64
	Velocity float64
}

// ExtractEvents scans the derived series once, in order, and returns the
// qualifying bars. An empty result means no signal fired; it is a normal
// outcome, not an error.
func ExtractEvents(d *DerivedSeries, params Parameters) []Event {
	var events []Event
	for i := 0; i < d.Series.Len(); i++ {
		if d.Signal[i] > params.SignalThreshold && d.Velocity[i] > params.VelocityThreshold {
			events = append(events, Event{
				Index:    i,
				Time:     d.Series.Time(i),
				Close:    d.Series.Close(i),
				Signal:   d.Signal[i],
				Velocity: d.Velocity[i],
			})
		}
	}
	return events
}
