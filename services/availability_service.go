package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"grandstay-backend/cache"
	"grandstay-backend/failure"
	"grandstay-backend/models"
	"grandstay-backend/repository"
)

// SummaryCache is the optional read cache for occupancy summaries. A nil
// cache disables it; correctness never depends on it.
type SummaryCache interface {
	GetSummary(ctx context.Context, asOf time.Time) (cache.Summary, error)
	SetSummary(ctx context.Context, asOf time.Time, summary cache.Summary) error
}

// AvailabilityService answers two different questions from the same facts:
// which rooms are free for a date range (booking creation) and how many rooms
// of each type are occupied on a single day (dashboard snapshots). A room's
// own status is advisory; bookings are always consulted.
type AvailabilityService struct {
	rooms    repository.RoomRepository
	bookings repository.BookingRepository
	cache    SummaryCache
	log      zerolog.Logger
}

func NewAvailabilityService(rooms repository.RoomRepository, bookings repository.BookingRepository, summaryCache SummaryCache, log zerolog.Logger) *AvailabilityService {
	return &AvailabilityService{
		rooms:    rooms,
		bookings: bookings,
		cache:    summaryCache,
		log:      log.With().Str("service", "availability").Logger(),
	}
}

// FindAvailableRooms returns rooms whose inventory status is available and
// that have no confirmed or checked-in booking overlapping
// [checkIn, checkOut). The interval is half-open: a booking ending exactly on
// checkIn does not conflict, so back-to-back turnover is allowed.
func (s *AvailabilityService) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomType string) ([]models.Room, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return nil, failure.BadRequest("check_in and check_out are required")
	}
	if !checkIn.Before(checkOut) {
		return nil, failure.BadRequest("check_in must be before check_out")
	}

	rooms, err := s.rooms.List(ctx, repository.RoomFilter{Type: roomType, Status: models.RoomStatusAvailable})
	if err != nil {
		return nil, err
	}

	active, err := s.bookings.List(ctx, repository.BookingFilter{Statuses: models.ActiveBookingStatuses})
	if err != nil {
		return nil, err
	}

	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if !roomHasConflict(room.ID, active, checkIn, checkOut) {
			available = append(available, room)
		}
	}
	return available, nil
}

// OccupancySummary returns, per room type, the total room count and how many
// rooms are free on asOf. Unlike the range query, occupancy here is inclusive
// on both ends: a guest checking out on asOf still counts as occupying it.
func (s *AvailabilityService) OccupancySummary(ctx context.Context, asOf time.Time) (cache.Summary, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	if s.cache != nil {
		if cached, err := s.cache.GetSummary(ctx, asOf); err != nil {
			s.log.Warn().Err(err).Msg("summary cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	rooms, err := s.rooms.List(ctx, repository.RoomFilter{})
	if err != nil {
		return nil, err
	}
	active, err := s.bookings.List(ctx, repository.BookingFilter{Statuses: models.ActiveBookingStatuses})
	if err != nil {
		return nil, err
	}

	summary := cache.Summary{}
	for _, room := range rooms {
		entry := summary[room.Type]
		entry.Total++
		if room.Status == models.RoomStatusAvailable && !roomOccupiedOn(room.ID, active, asOf) {
			entry.Available++
		}
		summary[room.Type] = entry
	}

	if s.cache != nil {
		if err := s.cache.SetSummary(ctx, asOf, summary); err != nil {
			s.log.Warn().Err(err).Msg("summary cache write failed")
		}
	}
	return summary, nil
}

// rangesOverlap applies the half-open convention: [a1,a2) and [b1,b2) overlap
// iff NOT (a2 <= b1 OR a1 >= b2).
func rangesOverlap(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

func roomHasConflict(roomID uint, active []models.Booking, checkIn, checkOut time.Time) bool {
	for _, b := range active {
		if b.RoomID == nil || *b.RoomID != roomID {
			continue
		}
		if rangesOverlap(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			return true
		}
	}
	return false
}

func roomOccupiedOn(roomID uint, active []models.Booking, asOf time.Time) bool {
	for _, b := range active {
		if b.RoomID == nil || *b.RoomID != roomID {
			continue
		}
		if !asOf.Before(b.CheckIn) && !asOf.After(b.CheckOut) {
			return true
		}
	}
	return false
}
