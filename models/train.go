package models

import "time"

// Train types as they appear in the CFR network.
const (
	TrainTypeInterCity  = "InterCity"
	TrainTypeInterRegio = "InterRegio"
	TrainTypeRegio      = "Regio"
	TrainTypePersonal   = "Personal"
)

// Seat is a single seat inside a wagon.
type Seat struct {
	SeatNumber string `json:"seatNumber"`
}

// Wagon describes one wagon of a train's layout.
type Wagon struct {
	WagonNumber int    `json:"wagonNumber"`
	WagonType   string `json:"wagonType"`
	TotalSeats  int    `json:"totalSeats"`
	Seats       []Seat `json:"seats"`
}

// RouteStop is an intermediate station on a train's route. Stops are kept
// ordered by increasing DistanceFromStart; the last stop's distance
// approximates the total route length.
type RouteStop struct {
	StationID         int       `json:"stationId"`
	StationName       string    `json:"stationName"`
	ArrivalTime       time.Time `json:"arrivalTime"`
	DepartureTime     time.Time `json:"departureTime"`
	StopDuration      int       `json:"stopDuration"` // minutes
	DistanceFromStart float64   `json:"distanceFromStart"`
}

// Route holds the intermediate stations between a train's endpoints.
type Route struct {
	IntermediateStations []RouteStop `json:"intermediateStations"`
}

// Train represents a train with its primary route, fare and seat layout.
// From/To carry the joined station names; FromID/ToID the station ids.
type Train struct {
	ID            int       `json:"id"`
	TrainNumber   string    `json:"trainNumber"`
	Type          string    `json:"type"`
	FromID        int       `json:"fromId"`
	ToID          int       `json:"toId"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Price         float64   `json:"price"`
	TotalSeats    int       `json:"totalSeats"`
	Wagons        []Wagon   `json:"wagons"`
	Route         Route     `json:"route"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TrainResult is a search hit: the train resolved for the requested
// station pair, with live availability.
type TrainResult struct {
	ID             int       `json:"id"`
	TrainNumber    string    `json:"trainNumber"`
	Type           string    `json:"type"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"availableSeats"`
	Stops          int       `json:"stops"`
	Wagons         []Wagon   `json:"wagons"`
	Route          Route     `json:"route"`
}
