package services

import (
	"sort"

	"railmate/models"
)

// SeatKey identifies one physical seat on a train.
type SeatKey struct {
	Wagon int
	Seat  string
}

// orderedWagon is a wagon with its seat numbers in allocation order.
type orderedWagon struct {
	number int
	seats  []string
}

// allocationOrder returns wagons ascending by wagon number, each with its
// seat numbers sorted as plain strings. String order means "10A" sorts
// before "2A"; that is the historical allocation policy and ticket layouts
// downstream depend on it, so it stays.
func allocationOrder(t *models.Train) []orderedWagon {
	wagons := make([]orderedWagon, 0, len(t.Wagons))
	for _, w := range t.Wagons {
		seats := make([]string, 0, len(w.Seats))
		for _, s := range w.Seats {
			seats = append(seats, s.SeatNumber)
		}
		sort.Strings(seats)
		wagons = append(wagons, orderedWagon{number: w.WagonNumber, seats: seats})
	}
	sort.Slice(wagons, func(i, j int) bool { return wagons[i].number < wagons[j].number })
	return wagons
}

// AllocateSeats assigns a concrete (wagon, seat) pair to every passenger.
// Passengers that requested a specific seat get it when the wagon and seat
// exist and the seat is free; otherwise the request falls back to the
// automatic walk starting at the requested wagon. Unrequested passengers
// continue the walk from the position after the previous assignment.
//
// occupied is the set of seats held by other confirmed, paid bookings; it
// is not modified. Returns ErrInsufficientCapacity when the walk exhausts
// the train, leaving no partial result behind.
func AllocateSeats(t *models.Train, passengers []models.Passenger, occupied map[SeatKey]bool) ([]models.Passenger, error) {
	wagons := allocationOrder(t)

	taken := make(map[SeatKey]bool, len(occupied)+len(passengers))
	for k := range occupied {
		taken[k] = true
	}

	assigned := make([]models.Passenger, len(passengers))
	copy(assigned, passengers)

	// Walk cursor for automatic allocation.
	curW, curS := 0, 0

	for i := range assigned {
		p := &assigned[i]

		var wi, si int
		var ok bool

		if p.WagonNumber != 0 && p.SeatNumber != "" {
			wi, si, ok = requestedSeat(wagons, taken, p.WagonNumber, p.SeatNumber)
			if !ok {
				// Requested seat is occupied or does not exist: fall back to
				// scanning from the requested wagon onwards.
				start := wagonIndex(wagons, p.WagonNumber)
				if start < 0 {
					start = 0
				}
				wi, si, ok = nextFree(wagons, taken, start, 0)
			}
		} else {
			wi, si, ok = nextFree(wagons, taken, curW, curS)
		}

		if !ok {
			return nil, ErrInsufficientCapacity
		}

		p.WagonNumber = wagons[wi].number
		p.SeatNumber = wagons[wi].seats[si]
		taken[SeatKey{Wagon: p.WagonNumber, Seat: p.SeatNumber}] = true
		curW, curS = wi, si+1
	}

	return assigned, nil
}

// requestedSeat validates an explicit (wagon, seat) request.
func requestedSeat(wagons []orderedWagon, taken map[SeatKey]bool, wagon int, seat string) (int, int, bool) {
	wi := wagonIndex(wagons, wagon)
	if wi < 0 {
		return 0, 0, false
	}
	for si, s := range wagons[wi].seats {
		if s == seat {
			if taken[SeatKey{Wagon: wagon, Seat: seat}] {
				return 0, 0, false
			}
			return wi, si, true
		}
	}
	return 0, 0, false
}

// nextFree scans wagons from the given position and returns the first seat
// not in taken.
func nextFree(wagons []orderedWagon, taken map[SeatKey]bool, startW, startS int) (int, int, bool) {
	for wi := startW; wi < len(wagons); wi++ {
		si := 0
		if wi == startW {
			si = startS
		}
		for ; si < len(wagons[wi].seats); si++ {
			key := SeatKey{Wagon: wagons[wi].number, Seat: wagons[wi].seats[si]}
			if !taken[key] {
				return wi, si, true
			}
		}
	}
	return 0, 0, false
}

func wagonIndex(wagons []orderedWagon, number int) int {
	for i, w := range wagons {
		if w.number == number {
			return i
		}
	}
	return -1
}
