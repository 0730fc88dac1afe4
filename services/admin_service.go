package services

import (
	"encoding/json"
	"fmt"
	"time"

	"railmate/database"
	"railmate/models"
)

// StatsFilter narrows the dashboard aggregates. All fields optional.
type StatsFilter struct {
	StartDate     time.Time
	EndDate       time.Time
	Status        string
	PaymentStatus string
}

// where renders the filter as a bookings WHERE clause using the given
// table alias, continuing the placeholder numbering in argIndex.
func (f StatsFilter) where(alias string) (string, []interface{}) {
	clause := " WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if !f.StartDate.IsZero() {
		clause += fmt.Sprintf(" AND %s.booking_date >= $%d", alias, argIndex)
		args = append(args, f.StartDate)
		argIndex++
	}
	if !f.EndDate.IsZero() {
		clause += fmt.Sprintf(" AND %s.booking_date <= $%d", alias, argIndex)
		args = append(args, f.EndDate)
		argIndex++
	}
	if f.Status != "" {
		clause += fmt.Sprintf(" AND %s.status = $%d", alias, argIndex)
		args = append(args, f.Status)
		argIndex++
	}
	if f.PaymentStatus != "" {
		clause += fmt.Sprintf(" AND %s.payment_status = $%d", alias, argIndex)
		args = append(args, f.PaymentStatus)
		argIndex++
	}

	return clause, args
}

// DashboardStats assembles the reporting payload: overview counters,
// revenue, monthly buckets, status and method breakdowns, the busiest
// trains and account growth.
func DashboardStats(filter StatsFilter) (map[string]interface{}, error) {
	db := database.GetDB()

	var userCount, trainCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return nil, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM trains`).Scan(&trainCount); err != nil {
		return nil, err
	}

	countBookings := func(f StatsFilter) (int, error) {
		clause, args := f.where("b")
		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM bookings b`+clause, args...).Scan(&n)
		return n, err
	}

	totalBookings, err := countBookings(filter)
	if err != nil {
		return nil, err
	}

	confirmedFilter := filter
	confirmedFilter.Status = models.BookingStatusConfirmed
	confirmedBookings, err := countBookings(confirmedFilter)
	if err != nil {
		return nil, err
	}

	cancelledFilter := filter
	cancelledFilter.Status = models.BookingStatusCancelled
	cancelledBookings, err := countBookings(cancelledFilter)
	if err != nil {
		return nil, err
	}

	completedFilter := filter
	completedFilter.PaymentStatus = models.PaymentStatusCompleted
	completedPayments, err := countBookings(completedFilter)
	if err != nil {
		return nil, err
	}

	refundedFilter := filter
	refundedFilter.PaymentStatus = models.PaymentStatusRefunded
	refundedPayments, err := countBookings(refundedFilter)
	if err != nil {
		return nil, err
	}

	// Revenue counts only bookings that were both confirmed and paid.
	revenueFilter := filter
	revenueFilter.Status = models.BookingStatusConfirmed
	revenueFilter.PaymentStatus = models.PaymentStatusCompleted
	revenueClause, revenueArgs := revenueFilter.where("b")
	var totalRevenue float64
	err = db.QueryRow(`
		SELECT COALESCE(SUM(b.total_price), 0) FROM bookings b`+revenueClause,
		revenueArgs...).Scan(&totalRevenue)
	if err != nil {
		return nil, err
	}

	monthly, err := bookingsByMonth(filter)
	if err != nil {
		return nil, err
	}

	byStatus, err := bookingsByStatus(filter)
	if err != nil {
		return nil, err
	}

	byMethod, err := bookingsByMethod(filter)
	if err != nil {
		return nil, err
	}

	topTrains, err := topTrainsByBookings(filter, 5)
	if err != nil {
		return nil, err
	}

	newUsers, err := newUsersByMonth()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"overview": map[string]interface{}{
			"totalUsers":        userCount,
			"totalTrains":       trainCount,
			"totalBookings":     totalBookings,
			"confirmedBookings": confirmedBookings,
			"cancelledBookings": cancelledBookings,
			"completedPayments": completedPayments,
			"refundedPayments":  refundedPayments,
			"totalRevenue":      round2(totalRevenue),
		},
		"bookingsByMonth":  monthly,
		"bookingsByStatus": byStatus,
		"bookingsByMethod": byMethod,
		"topTrains":        topTrains,
		"newUsersByMonth":  newUsers,
	}, nil
}

type monthBucket struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

func bookingsByMonth(filter StatsFilter) ([]monthBucket, error) {
	db := database.GetDB()
	clause, args := filter.where("b")
	rows, err := db.Query(`
		SELECT to_char(b.booking_date, 'YYYY-MM') AS month,
			COUNT(*),
			COALESCE(SUM(b.total_price) FILTER (WHERE b.payment_status = 'completed'), 0)
		FROM bookings b`+clause+`
		GROUP BY month
		ORDER BY month DESC
		LIMIT 12
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := []monthBucket{}
	for rows.Next() {
		var b monthBucket
		if err := rows.Scan(&b.Month, &b.Count, &b.Revenue); err != nil {
			return nil, err
		}
		b.Revenue = round2(b.Revenue)
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func bookingsByStatus(filter StatsFilter) (map[string]int, error) {
	db := database.GetDB()
	clause, args := filter.where("b")
	rows, err := db.Query(`
		SELECT b.status, COUNT(*) FROM bookings b`+clause+` GROUP BY b.status
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}

type methodBucket struct {
	Method  string  `json:"method"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

func bookingsByMethod(filter StatsFilter) ([]methodBucket, error) {
	db := database.GetDB()
	clause, args := filter.where("b")
	rows, err := db.Query(`
		SELECT b.payment_method, COUNT(*),
			COALESCE(SUM(b.total_price) FILTER (WHERE b.payment_status = 'completed'), 0)
		FROM bookings b`+clause+`
		GROUP BY b.payment_method
		ORDER BY COUNT(*) DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := []methodBucket{}
	for rows.Next() {
		var b methodBucket
		if err := rows.Scan(&b.Method, &b.Count, &b.Revenue); err != nil {
			return nil, err
		}
		b.Revenue = round2(b.Revenue)
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

type trainBucket struct {
	TrainNumber string `json:"trainNumber"`
	Route       string `json:"route"`
	Bookings    int    `json:"bookings"`
	Passengers  int    `json:"passengers"`
}

func topTrainsByBookings(filter StatsFilter, limit int) ([]trainBucket, error) {
	db := database.GetDB()
	f := filter
	f.Status = models.BookingStatusConfirmed
	clause, args := f.where("b")
	args = append(args, limit)

	rows, err := db.Query(fmt.Sprintf(`
		SELECT t.train_number, o.name, d.name, COUNT(*),
			COALESCE(SUM(jsonb_array_length(b.passengers)), 0)
		FROM bookings b
		JOIN trains t ON b.train_id = t.id
		JOIN stations o ON t.from_station_id = o.id
		JOIN stations d ON t.to_station_id = d.id
		%s
		GROUP BY t.train_number, o.name, d.name
		ORDER BY COUNT(*) DESC
		LIMIT $%d
	`, clause, len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := []trainBucket{}
	for rows.Next() {
		var b trainBucket
		var from, to string
		if err := rows.Scan(&b.TrainNumber, &from, &to, &b.Bookings, &b.Passengers); err != nil {
			return nil, err
		}
		b.Route = from + " - " + to
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func newUsersByMonth() ([]monthBucket, error) {
	db := database.GetDB()
	rows, err := db.Query(`
		SELECT to_char(created_at, 'YYYY-MM') AS month, COUNT(*), 0
		FROM users
		GROUP BY month
		ORDER BY month DESC
		LIMIT 12
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := []monthBucket{}
	for rows.Next() {
		var b monthBucket
		if err := rows.Scan(&b.Month, &b.Count, &b.Revenue); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// Pagination describes one page of an admin listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func paginate(page, limit, total int) Pagination {
	pages := (total + limit - 1) / limit
	if pages == 0 {
		pages = 1
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// AdminListBookings pages through all bookings, newest first, optionally
// filtered by status and payment status.
func AdminListBookings(page, limit int, status, paymentStatus string) ([]map[string]interface{}, Pagination, error) {
	db := database.GetDB()
	page, limit = pageBounds(page, limit)

	clause := " WHERE 1=1"
	args := []interface{}{}
	argIndex := 1
	if status != "" {
		clause += fmt.Sprintf(" AND b.status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}
	if paymentStatus != "" {
		clause += fmt.Sprintf(" AND b.payment_status = $%d", argIndex)
		args = append(args, paymentStatus)
		argIndex++
	}

	var total int
	err := db.QueryRow(`SELECT COUNT(*) FROM bookings b`+clause, args...).Scan(&total)
	if err != nil {
		return nil, Pagination{}, err
	}

	query := fmt.Sprintf(`
		SELECT b.id, b.booking_number, b.status, b.payment_status, b.payment_method,
			b.total_price, b.booking_date, b.passengers,
			u.email, u.first_name, u.last_name,
			COALESCE(t.train_number, '')
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		LEFT JOIN trains t ON b.train_id = t.id
		%s
		ORDER BY b.booking_date DESC
		LIMIT $%d OFFSET $%d
	`, clause, argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	bookings := []map[string]interface{}{}
	for rows.Next() {
		var id int
		var number, bStatus, payStatus, method string
		var price float64
		var date time.Time
		var paxJSON []byte
		var email, firstName, lastName, trainNumber string
		err := rows.Scan(&id, &number, &bStatus, &payStatus, &method, &price,
			&date, &paxJSON, &email, &firstName, &lastName, &trainNumber)
		if err != nil {
			return nil, Pagination{}, err
		}
		var passengers []models.Passenger
		if err := json.Unmarshal(paxJSON, &passengers); err != nil {
			return nil, Pagination{}, err
		}
		bookings = append(bookings, map[string]interface{}{
			"id":            id,
			"bookingNumber": number,
			"status":        bStatus,
			"paymentStatus": payStatus,
			"paymentMethod": method,
			"totalPrice":    price,
			"bookingDate":   date,
			"passengers":    len(passengers),
			"trainNumber":   trainNumber,
			"user": map[string]string{
				"email":     email,
				"firstName": firstName,
				"lastName":  lastName,
			},
		})
	}
	return bookings, paginate(page, limit, total), rows.Err()
}

// AdminListUsers pages through accounts, newest first.
func AdminListUsers(page, limit int) ([]models.User, Pagination, error) {
	db := database.GetDB()
	page, limit = pageBounds(page, limit)

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}

	rows, err := db.Query(userSelect+`
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		users = append(users, *user)
	}
	return users, paginate(page, limit, total), rows.Err()
}

// AdminListTrains pages through the catalog with live availability.
func AdminListTrains(page, limit int) ([]models.TrainResult, Pagination, error) {
	db := database.GetDB()
	page, limit = pageBounds(page, limit)

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM trains`).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}

	rows, err := db.Query(trainSelect+`
		ORDER BY t.departure_time
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	trains := []*models.Train{}
	for rows.Next() {
		train, err := scanTrain(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		trains = append(trains, train)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}

	results := []models.TrainResult{}
	for _, train := range trains {
		available, err := AvailableSeats(train.ID)
		if err != nil {
			return nil, Pagination{}, err
		}
		segment, _ := ResolveSegment(train, train.FromID, train.ToID)
		results = append(results, trainResult(train, segment, available))
	}
	return results, paginate(page, limit, total), nil
}
