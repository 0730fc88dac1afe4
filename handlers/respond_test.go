package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"railmate/services"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrTrainNotFound, http.StatusNotFound},
		{services.ErrBookingNotFound, http.StatusNotFound},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrAlreadyCancelled, http.StatusConflict},
		{services.ErrDuplicatePayment, http.StatusConflict},
		{services.ErrEmailTaken, http.StatusConflict},
		{services.ErrInsufficientCapacity, http.StatusBadRequest},
		{services.ErrRouteNotServed, http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForError(tt.err); got != tt.want {
			t.Errorf("statusForError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestStatusForWrappedError(t *testing.T) {
	err := fmt.Errorf("context: %w", services.ErrStationNotFound)
	if got := statusForError(err); got != http.StatusNotFound {
		t.Errorf("statusForError(wrapped) = %d, want 404", got)
	}
}
