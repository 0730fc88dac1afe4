package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"railmate/database"
	"railmate/models"
)

const trainSelect = `
	SELECT t.id, t.train_number, t.type, t.from_station_id, t.to_station_id,
		t.departure_time, t.arrival_time, t.price, t.total_seats,
		t.wagons, t.route, t.created_at,
		o.name, d.name
	FROM trains t
	JOIN stations o ON t.from_station_id = o.id
	JOIN stations d ON t.to_station_id = d.id
`

// SearchTrains lists the trains serving the (from, to) station pair on the
// given date. Trains whose primary endpoints do not match are still
// candidates: the segment resolver decides whether an intermediate portion
// of the route covers the pair, and non-applicable trains are excluded.
func SearchTrains(fromName, toName, date string) ([]models.TrainResult, error) {
	from, err := FindStationByName(fromName)
	if err != nil {
		return nil, err
	}
	to, err := FindStationByName(toName)
	if err != nil {
		return nil, err
	}

	db := database.GetDB()
	query := trainSelect
	args := []interface{}{}

	if date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format", ErrIncompleteRequest)
		}
		query += ` WHERE t.departure_time >= $1 AND t.departure_time < $2`
		args = append(args, day, day.AddDate(0, 0, 1))
	}
	query += ` ORDER BY t.departure_time`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.TrainResult{}
	for rows.Next() {
		train, err := scanTrain(rows)
		if err != nil {
			return nil, err
		}

		segment, ok := ResolveSegment(train, from.ID, to.ID)
		if !ok {
			continue
		}

		available, err := AvailableSeats(train.ID)
		if err != nil {
			return nil, err
		}

		results = append(results, trainResult(train, segment, available))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Resolved departures can differ from the trains' own, so re-sort.
	sort.Slice(results, func(i, j int) bool {
		return results[i].DepartureTime.Before(results[j].DepartureTime)
	})

	return results, nil
}

// GetTrain returns one train, optionally resolved for a sub-segment when
// both station names are supplied.
func GetTrain(id int, fromName, toName string) (*models.TrainResult, error) {
	train, err := loadTrain(database.GetDB(), id, false)
	if err != nil {
		return nil, err
	}

	available, err := AvailableSeats(train.ID)
	if err != nil {
		return nil, err
	}

	segment := Segment{
		FromID: train.FromID, ToID: train.ToID,
		From: train.From, To: train.To,
		DepartureTime: train.DepartureTime,
		ArrivalTime:   train.ArrivalTime,
		Price:         train.Price,
	}
	if fromName != "" && toName != "" {
		from, err := FindStationByName(fromName)
		if err != nil {
			return nil, err
		}
		to, err := FindStationByName(toName)
		if err != nil {
			return nil, err
		}
		var ok bool
		segment, ok = ResolveSegment(train, from.ID, to.ID)
		if !ok {
			return nil, ErrRouteNotServed
		}
	}

	result := trainResult(train, segment, available)
	return &result, nil
}

func trainResult(train *models.Train, segment Segment, available int) models.TrainResult {
	return models.TrainResult{
		ID:             train.ID,
		TrainNumber:    train.TrainNumber,
		Type:           train.Type,
		From:           segment.From,
		To:             segment.To,
		DepartureTime:  segment.DepartureTime,
		ArrivalTime:    segment.ArrivalTime,
		Price:          segment.Price,
		AvailableSeats: available,
		Stops:          len(train.Route.IntermediateStations),
		Wagons:         train.Wagons,
		Route:          train.Route,
	}
}

// loadTrain fetches a train with its joined station names. forUpdate locks
// the train row for the duration of the surrounding transaction; booking
// creation uses this as its per-train serialization point.
func loadTrain(q queryable, id int, forUpdate bool) (*models.Train, error) {
	query := trainSelect + ` WHERE t.id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF t`
	}

	train, err := scanTrain(q.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrainNotFound
	}
	return train, err
}

func scanTrain(row rowScanner) (*models.Train, error) {
	var t models.Train
	var wagons, route []byte

	err := row.Scan(&t.ID, &t.TrainNumber, &t.Type, &t.FromID, &t.ToID,
		&t.DepartureTime, &t.ArrivalTime, &t.Price, &t.TotalSeats,
		&wagons, &route, &t.CreatedAt, &t.From, &t.To)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(wagons, &t.Wagons); err != nil {
		return nil, fmt.Errorf("train %d: decoding wagons: %w", t.ID, err)
	}
	if err := json.Unmarshal(route, &t.Route); err != nil {
		return nil, fmt.Errorf("train %d: decoding route: %w", t.ID, err)
	}

	return &t, nil
}
