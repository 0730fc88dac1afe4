package services

import (
	"errors"
	"testing"

	"railmate/models"
)

func passengerNames(n int) []models.Passenger {
	passengers := make([]models.Passenger, n)
	for i := range passengers {
		passengers[i] = models.Passenger{
			FirstName: "Pax",
			LastName:  "Test",
			Email:     "pax@example.com",
		}
	}
	return passengers
}

func TestAllocateSeatsDistinct(t *testing.T) {
	train := testTrain()

	assigned, err := AllocateSeats(train, passengerNames(3), nil)
	if err != nil {
		t.Fatalf("AllocateSeats: %v", err)
	}
	if len(assigned) != 3 {
		t.Fatalf("assigned %d passengers, want 3", len(assigned))
	}

	seen := map[SeatKey]bool{}
	for _, p := range assigned {
		if p.WagonNumber == 0 || p.SeatNumber == "" {
			t.Errorf("passenger without a seat: %+v", p)
		}
		key := SeatKey{Wagon: p.WagonNumber, Seat: p.SeatNumber}
		if seen[key] {
			t.Errorf("seat %v assigned twice", key)
		}
		seen[key] = true
	}
}

func TestAllocateSeatsSkipsOccupied(t *testing.T) {
	train := testTrain()
	occupied := map[SeatKey]bool{
		{Wagon: 1, Seat: "1A"}: true,
		{Wagon: 1, Seat: "1B"}: true,
	}

	assigned, err := AllocateSeats(train, passengerNames(1), occupied)
	if err != nil {
		t.Fatalf("AllocateSeats: %v", err)
	}
	if assigned[0].WagonNumber != 2 || assigned[0].SeatNumber != "2A" {
		t.Errorf("got wagon %d seat %s, want wagon 2 seat 2A",
			assigned[0].WagonNumber, assigned[0].SeatNumber)
	}
}

func TestAllocateSeatsHonorsRequest(t *testing.T) {
	train := testTrain()

	passengers := passengerNames(2)
	passengers[1].WagonNumber = 2
	passengers[1].SeatNumber = "2B"

	assigned, err := AllocateSeats(train, passengers, nil)
	if err != nil {
		t.Fatalf("AllocateSeats: %v", err)
	}
	if assigned[0].WagonNumber != 1 || assigned[0].SeatNumber != "1A" {
		t.Errorf("first passenger: got wagon %d seat %s, want 1/1A",
			assigned[0].WagonNumber, assigned[0].SeatNumber)
	}
	if assigned[1].WagonNumber != 2 || assigned[1].SeatNumber != "2B" {
		t.Errorf("requested seat not honored: got wagon %d seat %s",
			assigned[1].WagonNumber, assigned[1].SeatNumber)
	}
}

func TestAllocateSeatsRequestFallback(t *testing.T) {
	train := testTrain()
	occupied := map[SeatKey]bool{
		{Wagon: 2, Seat: "2A"}: true,
	}

	// Requested seat is taken: the walk restarts at the requested wagon.
	passengers := passengerNames(1)
	passengers[0].WagonNumber = 2
	passengers[0].SeatNumber = "2A"

	assigned, err := AllocateSeats(train, passengers, occupied)
	if err != nil {
		t.Fatalf("AllocateSeats: %v", err)
	}
	if assigned[0].WagonNumber != 2 || assigned[0].SeatNumber != "2B" {
		t.Errorf("got wagon %d seat %s, want fallback 2/2B",
			assigned[0].WagonNumber, assigned[0].SeatNumber)
	}
}

func TestAllocateSeatsNonexistentRequest(t *testing.T) {
	train := testTrain()

	passengers := passengerNames(1)
	passengers[0].WagonNumber = 9
	passengers[0].SeatNumber = "9Z"

	assigned, err := AllocateSeats(train, passengers, nil)
	if err != nil {
		t.Fatalf("AllocateSeats: %v", err)
	}
	if assigned[0].WagonNumber != 1 || assigned[0].SeatNumber != "1A" {
		t.Errorf("got wagon %d seat %s, want walk restart at 1/1A",
			assigned[0].WagonNumber, assigned[0].SeatNumber)
	}
}

func TestAllocateSeatsInsufficientCapacity(t *testing.T) {
	train := testTrain()
	occupied := map[SeatKey]bool{
		{Wagon: 1, Seat: "1A"}: true,
		{Wagon: 1, Seat: "1B"}: true,
		{Wagon: 2, Seat: "2A"}: true,
	}

	_, err := AllocateSeats(train, passengerNames(2), occupied)
	if !errors.Is(err, ErrInsufficientCapacity) {
		t.Fatalf("err = %v, want ErrInsufficientCapacity", err)
	}
}

func TestAllocateSeatsInputUntouched(t *testing.T) {
	train := testTrain()
	passengers := passengerNames(1)

	if _, err := AllocateSeats(train, passengers, nil); err != nil {
		t.Fatalf("AllocateSeats: %v", err)
	}
	if passengers[0].SeatNumber != "" || passengers[0].WagonNumber != 0 {
		t.Errorf("input slice mutated: %+v", passengers[0])
	}
}

func TestAllocationOrderIsStringSorted(t *testing.T) {
	// Seat numbers sort as strings, so "10A" comes before "2A". The layout
	// is long established and ticket rendering relies on it.
	train := &models.Train{
		Wagons: []models.Wagon{
			{WagonNumber: 1, TotalSeats: 3, Seats: []models.Seat{
				{SeatNumber: "2A"}, {SeatNumber: "10A"}, {SeatNumber: "1A"},
			}},
		},
	}

	assigned, err := AllocateSeats(train, passengerNames(3), nil)
	if err != nil {
		t.Fatalf("AllocateSeats: %v", err)
	}

	want := []string{"10A", "1A", "2A"}
	for i, p := range assigned {
		if p.SeatNumber != want[i] {
			t.Errorf("passenger %d seat = %s, want %s", i, p.SeatNumber, want[i])
		}
	}
}
