package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"railmate/models"
)

// Seed loads a small demo dataset: stations on the București–Cluj corridor,
// a handful of trains with wagon layouts and intermediate stops, and an
// administrator account. Safe to run repeatedly.
func Seed(db *sql.DB, logger *logrus.Logger) error {
	stations := []models.Station{
		{Name: "București Nord", Code: "BUC", City: "București", Region: "București-Ilfov"},
		{Name: "Ploiești Vest", Code: "PLV", City: "Ploiești", Region: "Prahova"},
		{Name: "Sinaia", Code: "SIN", City: "Sinaia", Region: "Prahova"},
		{Name: "Brașov", Code: "BV", City: "Brașov", Region: "Brașov"},
		{Name: "Sighișoara", Code: "SIG", City: "Sighișoara", Region: "Mureș"},
		{Name: "Cluj-Napoca", Code: "CJ", City: "Cluj-Napoca", Region: "Cluj"},
		{Name: "Constanța", Code: "CT", City: "Constanța", Region: "Constanța"},
	}

	ids := make(map[string]int, len(stations))
	for _, s := range stations {
		var id int
		err := db.QueryRow(`
			INSERT INTO stations (name, code, city, region)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO UPDATE SET code = EXCLUDED.code
			RETURNING id
		`, s.Name, s.Code, s.City, s.Region).Scan(&id)
		if err != nil {
			return fmt.Errorf("seeding station %s: %w", s.Name, err)
		}
		ids[s.Name] = id
	}

	day := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	stop := func(name string, arr, dep time.Time, dist float64) models.RouteStop {
		return models.RouteStop{
			StationID:         ids[name],
			StationName:       name,
			ArrivalTime:       arr,
			DepartureTime:     dep,
			StopDuration:      int(dep.Sub(arr).Minutes()),
			DistanceFromStart: dist,
		}
	}

	trains := []models.Train{
		{
			TrainNumber: "IR 1633", Type: models.TrainTypeInterRegio,
			FromID: ids["București Nord"], ToID: ids["Cluj-Napoca"],
			DepartureTime: at(6, 0), ArrivalTime: at(13, 10),
			Price: 120, Wagons: buildWagons(4, 6),
			Route: models.Route{IntermediateStations: []models.RouteStop{
				stop("Ploiești Vest", at(6, 55), at(6, 58), 59),
				stop("Sinaia", at(7, 50), at(7, 52), 122),
				stop("Brașov", at(8, 40), at(8, 50), 166),
				stop("Sighișoara", at(10, 35), at(10, 38), 294),
			}},
		},
		{
			TrainNumber: "IC 531", Type: models.TrainTypeInterCity,
			FromID: ids["București Nord"], ToID: ids["Brașov"],
			DepartureTime: at(8, 15), ArrivalTime: at(10, 40),
			Price: 75, Wagons: buildWagons(3, 8),
			Route: models.Route{IntermediateStations: []models.RouteStop{
				stop("Ploiești Vest", at(9, 5), at(9, 7), 59),
				stop("Sinaia", at(9, 55), at(9, 57), 122),
			}},
		},
		{
			TrainNumber: "R 9102", Type: models.TrainTypeRegio,
			FromID: ids["București Nord"], ToID: ids["Constanța"],
			DepartureTime: at(7, 30), ArrivalTime: at(10, 5),
			Price: 60, Wagons: buildWagons(2, 10),
		},
	}

	for _, t := range trains {
		wagons, err := json.Marshal(t.Wagons)
		if err != nil {
			return err
		}
		route, err := json.Marshal(t.Route)
		if err != nil {
			return err
		}
		total := 0
		for _, w := range t.Wagons {
			total += w.TotalSeats
		}

		var exists bool
		if err := db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM trains WHERE train_number = $1 AND departure_time = $2)
		`, t.TrainNumber, t.DepartureTime).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}

		_, err = db.Exec(`
			INSERT INTO trains (train_number, type, from_station_id, to_station_id,
				departure_time, arrival_time, price, total_seats, wagons, route)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, t.TrainNumber, t.Type, t.FromID, t.ToID,
			t.DepartureTime, t.ArrivalTime, t.Price, total, wagons, route)
		if err != nil {
			return fmt.Errorf("seeding train %s: %w", t.TrainNumber, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, first_name, last_name, role)
		VALUES ('admin@railmate.ro', $1, 'Admin', 'RailMate', $2)
		ON CONFLICT (email) DO NOTHING
	`, string(hash), models.RoleAdministrator)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"stations": len(stations),
		"trains":   len(trains),
	}).Info("demo data seeded")
	return nil
}

// buildWagons generates a uniform second/first class layout. Seats are
// numbered row-first: 1A..1D, 2A..2D and so on.
func buildWagons(wagonCount, rows int) []models.Wagon {
	letters := []string{"A", "B", "C", "D"}
	wagons := make([]models.Wagon, 0, wagonCount)
	for w := 1; w <= wagonCount; w++ {
		wagonType := "second-class"
		if w == 1 {
			wagonType = "first-class"
		}
		seats := make([]models.Seat, 0, rows*len(letters))
		for r := 1; r <= rows; r++ {
			for _, l := range letters {
				seats = append(seats, models.Seat{SeatNumber: fmt.Sprintf("%d%s", r, l)})
			}
		}
		wagons = append(wagons, models.Wagon{
			WagonNumber: w,
			WagonType:   wagonType,
			TotalSeats:  len(seats),
			Seats:       seats,
		})
	}
	return wagons
}
