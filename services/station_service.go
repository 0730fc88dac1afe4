package services

import (
	"database/sql"
	"errors"
	"fmt"

	"railmate/database"
	"railmate/models"
)

// GetAllStations retrieves all stations, sorted by name
func GetAllStations() ([]models.Station, error) {
	db := database.GetDB()
	rows, err := db.Query(`
		SELECT id, name, code, city, region, latitude, longitude
		FROM stations
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := []models.Station{}
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, *station)
	}

	return stations, rows.Err()
}

// GetStationByID retrieves a single station
func GetStationByID(id int) (*models.Station, error) {
	db := database.GetDB()
	row := db.QueryRow(`
		SELECT id, name, code, city, region, latitude, longitude
		FROM stations
		WHERE id = $1
	`, id)

	station, err := scanStation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStationNotFound
	}
	return station, err
}

// FindStationByName resolves a station by its exact display name, the key
// the search and purchase flows pass around.
func FindStationByName(name string) (*models.Station, error) {
	db := database.GetDB()
	row := db.QueryRow(`
		SELECT id, name, code, city, region, latitude, longitude
		FROM stations
		WHERE name = $1
	`, name)

	station, err := scanStation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrStationNotFound, name)
	}
	return station, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStation(row rowScanner) (*models.Station, error) {
	var station models.Station
	var lat, lng sql.NullFloat64
	err := row.Scan(&station.ID, &station.Name, &station.Code,
		&station.City, &station.Region, &lat, &lng)
	if err != nil {
		return nil, err
	}
	if lat.Valid {
		station.Latitude = &lat.Float64
	}
	if lng.Valid {
		station.Longitude = &lng.Float64
	}
	return &station, nil
}
