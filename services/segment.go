package services

import (
	"math"
	"time"

	"railmate/models"
)

// tailDistanceFactor estimates the total route length when the requested
// segment runs past the last charted intermediate stop: the known distance
// plus 15%. Inherited fare policy; changing it changes published prices.
const tailDistanceFactor = 1.15

// minTailRatio floors the time-proportional fare of the final leg so it is
// never priced at zero.
const minTailRatio = 0.1

// Segment is the portion of a train's route that applies to a requested
// station pair, with its effective times and prorated fare.
type Segment struct {
	FromID        int       `json:"fromId"`
	ToID          int       `json:"toId"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Price         float64   `json:"price"`
}

// ResolveSegment determines which portion of the train's route covers the
// requested (from, to) pair: the full run, a head or tail segment, or an
// interior segment between two intermediate stops. The second return value
// is false when the train does not serve the pair.
//
// The same function backs both search listings and booking snapshots, so
// identical inputs always price identically.
func ResolveSegment(t *models.Train, fromID, toID int) (Segment, bool) {
	stops := t.Route.IntermediateStations

	// Full run.
	if t.FromID == fromID && t.ToID == toID {
		return Segment{
			FromID: fromID, ToID: toID,
			From: t.From, To: t.To,
			DepartureTime: t.DepartureTime,
			ArrivalTime:   t.ArrivalTime,
			Price:         round2(t.Price),
		}, true
	}

	fullDistance := 0.0
	if len(stops) > 0 {
		fullDistance = stops[len(stops)-1].DistanceFromStart
	}

	// Head segment: train origin to an intermediate stop.
	if t.FromID == fromID {
		if i := stopIndex(stops, toID); i >= 0 {
			price := t.Price
			if fullDistance > 0 {
				price = t.Price * stops[i].DistanceFromStart / fullDistance
			}
			return Segment{
				FromID: fromID, ToID: toID,
				From: t.From, To: stops[i].StationName,
				DepartureTime: t.DepartureTime,
				ArrivalTime:   stops[i].ArrivalTime,
				Price:         round2(price),
			}, true
		}
	}

	// Tail segment: an intermediate stop to the train destination.
	if t.ToID == toID {
		if j := stopIndex(stops, fromID); j >= 0 {
			var price float64
			if j == len(stops)-1 {
				// Distance past the last stop is unknown; prorate on time.
				total := t.ArrivalTime.Sub(t.DepartureTime)
				leg := t.ArrivalTime.Sub(stops[j].DepartureTime)
				ratio := minTailRatio
				if total > 0 {
					ratio = leg.Seconds() / total.Seconds()
					if ratio <= 0 {
						ratio = minTailRatio
					}
				}
				price = t.Price * ratio
			} else {
				estimatedTotal := fullDistance * tailDistanceFactor
				remaining := estimatedTotal - stops[j].DistanceFromStart
				price = t.Price
				if estimatedTotal > 0 {
					price = t.Price * remaining / estimatedTotal
				}
			}
			return Segment{
				FromID: fromID, ToID: toID,
				From: stops[j].StationName, To: t.To,
				DepartureTime: stops[j].DepartureTime,
				ArrivalTime:   t.ArrivalTime,
				Price:         round2(price),
			}, true
		}
	}

	// Interior segment between two intermediate stops, in route order.
	if j := stopIndex(stops, fromID); j >= 0 {
		if i := stopIndex(stops, toID); i > j {
			price := t.Price
			if fullDistance > 0 {
				price = t.Price * (stops[i].DistanceFromStart - stops[j].DistanceFromStart) / fullDistance
			}
			return Segment{
				FromID: fromID, ToID: toID,
				From: stops[j].StationName, To: stops[i].StationName,
				DepartureTime: stops[j].DepartureTime,
				ArrivalTime:   stops[i].ArrivalTime,
				Price:         round2(price),
			}, true
		}
	}

	return Segment{}, false
}

// Snapshot freezes the segment into the immutable copy stored on a booking.
func (s Segment) Snapshot(t *models.Train) models.TrainSnapshot {
	return models.TrainSnapshot{
		TrainNumber:   t.TrainNumber,
		Type:          t.Type,
		From:          s.From,
		To:            s.To,
		DepartureTime: s.DepartureTime,
		ArrivalTime:   s.ArrivalTime,
		Price:         s.Price,
	}
}

func stopIndex(stops []models.RouteStop, stationID int) int {
	for i, s := range stops {
		if s.StationID == stationID {
			return i
		}
	}
	return -1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
