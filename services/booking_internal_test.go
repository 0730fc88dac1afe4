package services

import (
	"testing"
	"time"

	"railmate/models"
)

func TestClampAvailable(t *testing.T) {
	tests := []struct {
		total  int
		booked int
		want   int
	}{
		{100, 0, 100},
		{100, 40, 60},
		{100, 100, 0},
		{100, 150, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := clampAvailable(tt.total, tt.booked); got != tt.want {
			t.Errorf("clampAvailable(%d, %d) = %d, want %d", tt.total, tt.booked, got, tt.want)
		}
	}
}

func TestSegmentViewPrefersValidSnapshot(t *testing.T) {
	snapshot := models.TrainSnapshot{
		TrainNumber: "IC 531", Type: models.TrainTypeInterCity,
		From: "A", To: "B", Price: 50,
	}
	live := &models.TrainSnapshot{
		TrainNumber: "IC 531", From: "A", To: "E", Price: 120,
	}

	got := segmentView(snapshot, live, time.Now())
	if got != snapshot {
		t.Errorf("view = %+v, want stored snapshot", got)
	}
}

func TestSegmentViewFallsBackToLiveTrain(t *testing.T) {
	// Legacy rows carry an "N/A" snapshot; the live train wins then.
	snapshot := models.TrainSnapshot{
		TrainNumber: "IC 531", From: models.SnapshotUnknown, To: "B",
	}
	live := &models.TrainSnapshot{
		TrainNumber: "IC 531", From: "A", To: "E", Price: 120,
	}

	got := segmentView(snapshot, live, time.Now())
	if got != *live {
		t.Errorf("view = %+v, want live train", got)
	}
}

func TestSegmentViewSentinelWhenTrainDeleted(t *testing.T) {
	bookingDate := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	got := segmentView(models.TrainSnapshot{}, nil, bookingDate)
	if got.TrainNumber != models.SnapshotUnknown || got.From != models.SnapshotUnknown {
		t.Errorf("view = %+v, want sentinel fields", got)
	}
	if !got.DepartureTime.Equal(bookingDate) {
		t.Errorf("departure = %v, want booking date %v", got.DepartureTime, bookingDate)
	}
}

func TestSnapshotValid(t *testing.T) {
	tests := []struct {
		name string
		snap models.TrainSnapshot
		want bool
	}{
		{"complete", models.TrainSnapshot{TrainNumber: "R 9102", From: "A", To: "B"}, true},
		{"empty", models.TrainSnapshot{}, false},
		{"sentinel from", models.TrainSnapshot{TrainNumber: "R 9102", From: models.SnapshotUnknown, To: "B"}, false},
		{"sentinel to", models.TrainSnapshot{TrainNumber: "R 9102", From: "A", To: models.SnapshotUnknown}, false},
		{"missing train number", models.TrainSnapshot{From: "A", To: "B"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQRCodeURL(t *testing.T) {
	got := qrCodeURL("RM-2026-00042")
	want := "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=RM-2026-00042"
	if got != want {
		t.Errorf("qrCodeURL = %q, want %q", got, want)
	}
}
