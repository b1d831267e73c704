package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"grandstay-backend/failure"
	"grandstay-backend/models"
	"grandstay-backend/repository"
)

// DailySnapshot is one day of room inventory: how many rooms existed and how
// many of them were occupied.
type DailySnapshot struct {
	Date     time.Time `json:"date"`
	Total    int       `json:"total"`
	Occupied int       `json:"occupied"`
}

// KPIReport is the dashboard metric set. Every ratio guards its zero
// denominator and reports 0, so the consumer always renders a number.
type KPIReport struct {
	TotalBookings    int     `json:"totalBookings"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalNights      int     `json:"totalNights"`
	AvgStayLength    float64 `json:"avgStayLength"`
	CancellationRate float64 `json:"cancellationRate"`
	OccupancyRate    float64 `json:"occupancyRate"`
	ADR              float64 `json:"adr"`
	RevPAR           float64 `json:"revpar"`
}

// MetricsService derives KPIs from bookings and daily occupancy snapshots.
// ComputeKPIs itself is pure; the repositories are only used to assemble its
// inputs for a requested window.
type MetricsService struct {
	bookings repository.BookingRepository
	rooms    repository.RoomRepository
	log      zerolog.Logger
}

func NewMetricsService(bookings repository.BookingRepository, rooms repository.RoomRepository, log zerolog.Logger) *MetricsService {
	return &MetricsService{
		bookings: bookings,
		rooms:    rooms,
		log:      log.With().Str("service", "metrics").Logger(),
	}
}

// GetKPIs loads bookings and builds one snapshot per day in [from, to], then
// computes the report.
func (s *MetricsService) GetKPIs(ctx context.Context, from, to time.Time) (KPIReport, error) {
	if from.IsZero() || to.IsZero() {
		return KPIReport{}, failure.BadRequest("from and to dates are required")
	}
	if to.Before(from) {
		return KPIReport{}, failure.BadRequest("from must not be after to")
	}

	bookings, err := s.bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		return KPIReport{}, err
	}
	rooms, err := s.rooms.List(ctx, repository.RoomFilter{})
	if err != nil {
		return KPIReport{}, err
	}

	snapshots := BuildDailySnapshots(rooms, bookings, from, to)
	return ComputeKPIs(bookings, snapshots, from, to), nil
}

// BuildDailySnapshots walks the window one day at a time and counts rooms
// covered by an active booking on that day (inclusive bounds, matching the
// occupancy summary semantics).
func BuildDailySnapshots(rooms []models.Room, bookings []models.Booking, from, to time.Time) []DailySnapshot {
	from = dateOnly(from)
	to = dateOnly(to)

	active := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if (b.Status == models.BookingStatusConfirmed || b.Status == models.BookingStatusCheckedIn || b.Status == models.BookingStatusCheckedOut) && b.RoomID != nil {
			active = append(active, b)
		}
	}

	var snapshots []DailySnapshot
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		occupied := 0
		for _, room := range rooms {
			if roomOccupiedOn(room.ID, active, day) {
				occupied++
			}
		}
		snapshots = append(snapshots, DailySnapshot{Date: day, Total: len(rooms), Occupied: occupied})
	}
	return snapshots
}

// ComputeKPIs derives the metric set from bookings and snapshots. Bookings
// are attributed to the window by created_at, falling back to check_in when
// created_at was never set.
func ComputeKPIs(bookings []models.Booking, snapshots []DailySnapshot, from, to time.Time) KPIReport {
	var report KPIReport

	cancelled := 0
	stayedBookings := 0
	for _, b := range bookings {
		if inWindow(attributionDate(b), from, to) {
			report.TotalBookings++
			if b.Status == models.BookingStatusCancelled {
				cancelled++
			}
		}
		if b.PaymentStatus == models.PaymentStatusPaid {
			report.TotalRevenue += b.TotalAmount
		}
		switch b.Status {
		case models.BookingStatusConfirmed, models.BookingStatusCheckedIn, models.BookingStatusCheckedOut:
			report.TotalNights += nightsBetween(b.CheckIn, b.CheckOut)
			stayedBookings++
		}
	}

	if stayedBookings > 0 {
		report.AvgStayLength = float64(report.TotalNights) / float64(stayedBookings)
	}
	if report.TotalBookings > 0 {
		report.CancellationRate = 100 * float64(cancelled) / float64(report.TotalBookings)
	}
	if report.TotalNights > 0 {
		report.ADR = report.TotalRevenue / float64(report.TotalNights)
	}

	occupiedRoomNights, totalRoomNights := 0, 0
	for _, snapshot := range snapshots {
		if inWindow(snapshot.Date, from, to) {
			occupiedRoomNights += snapshot.Occupied
			totalRoomNights += snapshot.Total
		}
	}
	if totalRoomNights > 0 {
		report.OccupancyRate = 100 * float64(occupiedRoomNights) / float64(totalRoomNights)
	}

	report.RevPAR = report.ADR * (report.OccupancyRate / 100)
	return report
}

func attributionDate(b models.Booking) time.Time {
	if !b.CreatedAt.IsZero() {
		return b.CreatedAt
	}
	return b.CheckIn
}

func inWindow(t time.Time, from, to time.Time) bool {
	day := dateOnly(t)
	return !day.Before(dateOnly(from)) && !day.After(dateOnly(to))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
