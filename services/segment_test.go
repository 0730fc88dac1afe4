package services

import (
	"testing"
	"time"

	"railmate/models"
)

// testTrain runs A(1) -> E(5) with intermediate stops B(2)@30, C(3)@70,
// D(4)@100 and a base fare of 100.
func testTrain() *models.Train {
	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	arr := dep.Add(4 * time.Hour)

	return &models.Train{
		ID:            1,
		TrainNumber:   "IR 1633",
		Type:          models.TrainTypeInterRegio,
		FromID:        1,
		ToID:          5,
		From:          "A",
		To:            "E",
		DepartureTime: dep,
		ArrivalTime:   arr,
		Price:         100,
		TotalSeats:    4,
		Wagons: []models.Wagon{
			{WagonNumber: 1, WagonType: "second-class", TotalSeats: 2, Seats: []models.Seat{
				{SeatNumber: "1A"}, {SeatNumber: "1B"},
			}},
			{WagonNumber: 2, WagonType: "second-class", TotalSeats: 2, Seats: []models.Seat{
				{SeatNumber: "2A"}, {SeatNumber: "2B"},
			}},
		},
		Route: models.Route{
			IntermediateStations: []models.RouteStop{
				{StationID: 2, StationName: "B", ArrivalTime: dep.Add(1 * time.Hour),
					DepartureTime: dep.Add(65 * time.Minute), DistanceFromStart: 30},
				{StationID: 3, StationName: "C", ArrivalTime: dep.Add(2 * time.Hour),
					DepartureTime: dep.Add(125 * time.Minute), DistanceFromStart: 70},
				{StationID: 4, StationName: "D", ArrivalTime: dep.Add(170 * time.Minute),
					DepartureTime: dep.Add(3 * time.Hour), DistanceFromStart: 100},
			},
		},
	}
}

func TestResolveSegmentPrices(t *testing.T) {
	train := testTrain()

	tests := []struct {
		name   string
		fromID int
		toID   int
		price  float64
	}{
		{"direct full run", 1, 5, 100},
		{"head to first stop", 1, 2, 30},
		{"head to second stop", 1, 3, 70},
		{"head to last stop", 1, 4, 100},
		{"interior", 2, 3, 40},
		{"interior spanning a stop", 2, 4, 70},
		// Past the last charted stop the distance is estimated as
		// fullDistance * 1.15: 100 * (115-30)/115.
		{"tail from earlier stop", 2, 5, 73.91},
		// From the last stop the fare is time-proportional: the final leg
		// is 1h of a 4h run.
		{"tail from last stop", 4, 5, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, ok := ResolveSegment(train, tt.fromID, tt.toID)
			if !ok {
				t.Fatalf("ResolveSegment(%d, %d) not applicable", tt.fromID, tt.toID)
			}
			if seg.Price != tt.price {
				t.Errorf("price = %v, want %v", seg.Price, tt.price)
			}
			if seg.Price <= 0 || seg.Price > train.Price {
				t.Errorf("price %v outside (0, %v]", seg.Price, train.Price)
			}
		})
	}
}

func TestResolveSegmentNotApplicable(t *testing.T) {
	train := testTrain()

	tests := []struct {
		name   string
		fromID int
		toID   int
	}{
		{"reversed interior pair", 3, 2},
		{"unknown origin", 99, 5},
		{"unknown destination", 1, 99},
		{"destination before origin on full run", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ResolveSegment(train, tt.fromID, tt.toID); ok {
				t.Errorf("ResolveSegment(%d, %d) applicable, want not", tt.fromID, tt.toID)
			}
		})
	}
}

func TestResolveSegmentDeterministic(t *testing.T) {
	train := testTrain()

	first, ok1 := ResolveSegment(train, 2, 5)
	second, ok2 := ResolveSegment(train, 2, 5)
	if !ok1 || !ok2 {
		t.Fatal("segment not applicable")
	}
	if first != second {
		t.Errorf("repeated resolution differs: %+v vs %+v", first, second)
	}
}

func TestResolveSegmentTimes(t *testing.T) {
	train := testTrain()
	stops := train.Route.IntermediateStations

	seg, ok := ResolveSegment(train, 2, 3)
	if !ok {
		t.Fatal("segment not applicable")
	}
	if !seg.DepartureTime.Equal(stops[0].DepartureTime) {
		t.Errorf("departure = %v, want stop departure %v", seg.DepartureTime, stops[0].DepartureTime)
	}
	if !seg.ArrivalTime.Equal(stops[1].ArrivalTime) {
		t.Errorf("arrival = %v, want stop arrival %v", seg.ArrivalTime, stops[1].ArrivalTime)
	}
}

func TestResolveSegmentTailFloor(t *testing.T) {
	// Last stop departing at the train's arrival time would price the leg
	// at zero; the floor keeps it at 10% of the base fare.
	train := testTrain()
	stops := train.Route.IntermediateStations
	stops[len(stops)-1].DepartureTime = train.ArrivalTime

	seg, ok := ResolveSegment(train, 4, 5)
	if !ok {
		t.Fatal("segment not applicable")
	}
	if seg.Price != 10 {
		t.Errorf("price = %v, want floor 10", seg.Price)
	}
}

func TestResolveSegmentNoStops(t *testing.T) {
	train := testTrain()
	train.Route.IntermediateStations = nil

	seg, ok := ResolveSegment(train, 1, 5)
	if !ok {
		t.Fatal("direct segment not applicable")
	}
	if seg.Price != train.Price {
		t.Errorf("price = %v, want full fare %v", seg.Price, train.Price)
	}

	if _, ok := ResolveSegment(train, 1, 3); ok {
		t.Error("intermediate pair resolved on a train without stops")
	}
}

func TestSnapshotFreezesSegment(t *testing.T) {
	train := testTrain()
	seg, ok := ResolveSegment(train, 1, 2)
	if !ok {
		t.Fatal("segment not applicable")
	}

	snap := seg.Snapshot(train)
	if snap.TrainNumber != "IR 1633" || snap.From != "A" || snap.To != "B" {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Price != 30 {
		t.Errorf("snapshot price = %v, want 30", snap.Price)
	}

	// Mutating the live train afterwards must not reach the snapshot.
	train.Price = 999
	train.From = "X"
	if snap.Price != 30 || snap.From != "A" {
		t.Errorf("snapshot changed after train mutation: %+v", snap)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{73.9130434, 73.91},
		{1.234567, 1.23},
		{9.876, 9.88},
		{100, 100},
		{0.004, 0},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
