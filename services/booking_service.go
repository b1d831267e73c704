package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"grandstay-backend/events"
	"grandstay-backend/failure"
	"grandstay-backend/models"
	"grandstay-backend/repository"
	"grandstay-backend/utils"
)

const referenceMaxRetries = 5

// HoldCache is the optional per-room hold used to narrow the window between
// the availability re-check and the booking insert. MySQL offers no native
// exclusion constraint over (room, date range), so with no cache the window
// shrinks to re-check-then-insert only; this is documented behavior, not
// strict exclusivity.
type HoldCache interface {
	AcquireRoomHold(ctx context.Context, roomID uint, ttl time.Duration) (bool, error)
	ReleaseRoomHold(ctx context.Context, roomID uint) error
	InvalidateSummaries(ctx context.Context) error
}

// EventPublisher is the optional push side channel; one event per committed
// mutation. Publishing never affects the outcome of the mutation.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event events.Event) error
}

// BookingService owns the booking lifecycle: creation with conflict check,
// status transitions, and the room-status synchronization that terminal
// transitions trigger.
type BookingService struct {
	bookings     repository.BookingRepository
	rooms        repository.RoomRepository
	availability *AvailabilityService
	pricing      *PricingService

	cache         HoldCache
	publisher     EventPublisher
	initialStatus models.BookingStatus
	holdTTL       time.Duration
	log           zerolog.Logger
}

type BookingServiceOption func(*BookingService)

// WithInitialStatus sets the status newly created bookings start in. Only
// pending and confirmed are meaningful creation states.
func WithInitialStatus(status models.BookingStatus) BookingServiceOption {
	return func(s *BookingService) {
		if status == models.BookingStatusPending || status == models.BookingStatusConfirmed {
			s.initialStatus = status
		}
	}
}

func WithHoldCache(cache HoldCache, holdTTL time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
		s.holdTTL = holdTTL
	}
}

func WithEventPublisher(publisher EventPublisher) BookingServiceOption {
	return func(s *BookingService) {
		s.publisher = publisher
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	rooms repository.RoomRepository,
	availability *AvailabilityService,
	pricing *PricingService,
	log zerolog.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:      bookings,
		rooms:         rooms,
		availability:  availability,
		pricing:       pricing,
		initialStatus: models.BookingStatusConfirmed,
		holdTTL:       15 * time.Second,
		log:           log.With().Str("service", "bookings").Logger(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBookingInput is the client payload for a new booking. Amount fields
// are deliberately absent: nights and total are always recomputed server-side.
type CreateBookingInput struct {
	GuestName   string    `json:"guestName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Nationality string    `json:"nationality"`
	CheckIn     time.Time `json:"checkIn"`
	CheckOut    time.Time `json:"checkOut"`
	RoomID      *uint     `json:"roomId"`
	RoomType    string    `json:"roomType"`
	Guests      int       `json:"guests"`

	SpecialRequests string `json:"specialRequests"`
	PurposeOfVisit  string `json:"purposeOfVisit"`
	PaymentMethod   string `json:"paymentMethod"`
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if strings.TrimSpace(input.GuestName) == "" {
		return nil, failure.BadRequest("guest_name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, failure.BadRequest("email is required")
	}
	if input.CheckIn.IsZero() || input.CheckOut.IsZero() {
		return nil, failure.BadRequest("check_in and check_out are required")
	}
	if !input.CheckIn.Before(input.CheckOut) {
		return nil, failure.BadRequest("check_in must be before check_out")
	}
	if input.Guests < 1 {
		return nil, failure.BadRequest("guests must be at least 1")
	}

	nights := nightsBetween(input.CheckIn, input.CheckOut)
	rate, currency, err := s.pricing.NightlyRate(ctx, input.RoomType)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		GuestName:       strings.TrimSpace(input.GuestName),
		Email:           strings.TrimSpace(input.Email),
		Phone:           strings.TrimSpace(input.Phone),
		Nationality:     strings.TrimSpace(input.Nationality),
		CheckIn:         input.CheckIn,
		CheckOut:        input.CheckOut,
		RoomType:        input.RoomType,
		Guests:          input.Guests,
		Nights:          nights,
		TotalAmount:     float64(nights) * rate,
		Currency:        currency,
		SpecialRequests: input.SpecialRequests,
		PurposeOfVisit:  input.PurposeOfVisit,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          s.initialStatus,
	}

	if input.RoomID != nil {
		release, err := s.verifyRoomFree(ctx, *input.RoomID, input.CheckIn, input.CheckOut)
		if err != nil {
			return nil, err
		}
		defer release()

		room, err := s.rooms.Get(ctx, *input.RoomID)
		if err != nil {
			return nil, err
		}
		booking.RoomID = input.RoomID
		booking.RoomNumber = room.Number
		if booking.RoomType == "" {
			booking.RoomType = room.Type
		}
	}

	if err := s.createWithReference(ctx, booking); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "created", booking)
	return booking, nil
}

// verifyRoomFree takes the redis hold when available and re-runs the
// availability check for the requested range right before the insert. The
// returned release func is a no-op when no hold was taken.
func (s *BookingService) verifyRoomFree(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (func(), error) {
	release := func() {}
	if s.cache != nil {
		ok, err := s.cache.AcquireRoomHold(ctx, roomID, s.holdTTL)
		if err != nil {
			s.log.Warn().Err(err).Uint("room_id", roomID).Msg("room hold unavailable, falling back to re-check only")
		} else if !ok {
			return nil, failure.Conflict("room is being booked by another request, try again")
		} else {
			release = func() {
				if err := s.cache.ReleaseRoomHold(ctx, roomID); err != nil {
					s.log.Warn().Err(err).Uint("room_id", roomID).Msg("failed to release room hold")
				}
			}
		}
	}

	free, err := s.availability.FindAvailableRooms(ctx, checkIn, checkOut, "")
	if err != nil {
		release()
		return nil, err
	}
	for _, room := range free {
		if room.ID == roomID {
			return release, nil
		}
	}
	release()
	return nil, failure.Conflict("room is not available for the requested dates")
}

// createWithReference persists the booking, regenerating the reference on a
// duplicate-key conflict.
func (s *BookingService) createWithReference(ctx context.Context, booking *models.Booking) error {
	var lastErr error
	for attempt := 0; attempt < referenceMaxRetries; attempt++ {
		reference, err := utils.GenerateBookingReference()
		if err != nil {
			return failure.InternalError(err)
		}
		booking.Reference = reference

		lastErr = s.bookings.Create(ctx, booking)
		if lastErr == nil {
			return nil
		}
		if !failure.IsConflict(lastErr) {
			return lastErr
		}
		s.log.Warn().Str("reference", reference).Int("attempt", attempt+1).Msg("booking reference collision, retrying")
	}
	return lastErr
}

// UpdateStatus applies a lifecycle transition. Terminal transitions release
// the assigned room; a failed release is logged and reported through the
// event log only, never to the caller, and the committed booking write stands.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, newStatus models.BookingStatus) (*models.Booking, error) {
	if !models.ValidBookingStatus(newStatus) {
		return nil, failure.BadRequest("invalid booking status: " + string(newStatus))
	}

	current, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.bookings.Update(ctx, id, map[string]interface{}{"status": newStatus})
	if err != nil {
		return nil, err
	}

	if newStatus.IsTerminal() && current.RoomID != nil {
		s.releaseRoom(ctx, *current.RoomID, current.ID)
	}

	s.afterMutation(ctx, "status-"+string(newStatus), updated)
	return updated, nil
}

// CancelBooking is idempotent: cancelling an already-cancelled booking
// succeeds without touching state again.
func (s *BookingService) CancelBooking(ctx context.Context, id uint, reason string) (*models.Booking, error) {
	current, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == models.BookingStatusCancelled {
		return current, nil
	}

	patch := map[string]interface{}{"status": models.BookingStatusCancelled}
	if reason = strings.TrimSpace(reason); reason != "" {
		notes := "cancelled: " + reason
		if current.Notes != "" {
			notes = current.Notes + "\n" + notes
		}
		patch["notes"] = notes
	}

	updated, err := s.bookings.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if current.RoomID != nil {
		s.releaseRoom(ctx, *current.RoomID, current.ID)
	}

	s.afterMutation(ctx, "cancelled", updated)
	return updated, nil
}

// bookingPatchFields is the allow-list for generic updates, mapping accepted
// payload keys onto canonical columns. Anything else is silently dropped,
// which keeps id, reference, and created_at out of client reach.
var bookingPatchFields = map[string]string{
	"guestName":       "guest_name",
	"guest_name":      "guest_name",
	"email":           "email",
	"phone":           "phone",
	"nationality":     "nationality",
	"checkIn":         "check_in",
	"check_in":        "check_in",
	"checkOut":        "check_out",
	"check_out":       "check_out",
	"roomId":          "room_id",
	"room_id":         "room_id",
	"roomType":        "room_type",
	"room_type":       "room_type",
	"roomNumber":      "room_number",
	"room_number":     "room_number",
	"guests":          "guests",
	"totalAmount":     "total_amount",
	"total_amount":    "total_amount",
	"currency":        "currency",
	"status":          "status",
	"paymentMethod":   "payment_method",
	"payment_method":  "payment_method",
	"paymentStatus":   "payment_status",
	"payment_status":  "payment_status",
	"specialRequests": "special_requests",
	"special_requests": "special_requests",
	"purposeOfVisit":  "purpose_of_visit",
	"purpose_of_visit": "purpose_of_visit",
	"notes":           "notes",
}

// UpdateBookingFields applies a sanitized patch. The empty sanitized patch is
// its own failure so callers can distinguish "nothing to do" from success.
func (s *BookingService) UpdateBookingFields(ctx context.Context, id uint, patch map[string]interface{}) (*models.Booking, error) {
	sanitized := make(map[string]interface{}, len(patch))
	for key, value := range patch {
		column, ok := bookingPatchFields[key]
		if !ok {
			continue
		}
		sanitized[column] = value
	}
	if len(sanitized) == 0 {
		return nil, failure.Unprocessable("no updatable fields in patch")
	}

	var newStatus models.BookingStatus
	if raw, ok := sanitized["status"]; ok {
		status, ok := toBookingStatus(raw)
		if !ok {
			return nil, failure.BadRequest("invalid booking status")
		}
		sanitized["status"] = status
		newStatus = status
	}
	for _, dateColumn := range []string{"check_in", "check_out"} {
		if raw, ok := sanitized[dateColumn]; ok {
			parsed, ok := toDate(raw)
			if !ok {
				return nil, failure.BadRequest("invalid " + dateColumn + " date")
			}
			sanitized[dateColumn] = parsed
		}
	}

	current, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.bookings.Update(ctx, id, sanitized)
	if err != nil {
		return nil, err
	}

	if newStatus.IsTerminal() && current.RoomID != nil {
		s.releaseRoom(ctx, *current.RoomID, current.ID)
	}

	s.afterMutation(ctx, "updated", updated)
	return updated, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return s.bookings.Get(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.List(ctx, repository.BookingFilter{})
}

// releaseRoom flips the room back to available unless some other active
// booking still holds it. Failures here are secondary to the already
// committed booking write: they are logged, never propagated.
func (s *BookingService) releaseRoom(ctx context.Context, roomID, excludeBookingID uint) {
	others, err := s.bookings.List(ctx, repository.BookingFilter{
		Statuses: models.ActiveBookingStatuses,
		RoomID:   &roomID,
	})
	if err != nil {
		s.log.Error().Err(err).Uint("room_id", roomID).Msg("room release skipped: could not check active bookings")
		return
	}
	for _, b := range others {
		if b.ID != excludeBookingID {
			s.log.Info().Uint("room_id", roomID).Uint("held_by", b.ID).Msg("room still held by another active booking")
			return
		}
	}

	if _, err := s.rooms.Update(ctx, roomID, map[string]interface{}{"status": models.RoomStatusAvailable}); err != nil {
		s.log.Error().Err(err).Uint("room_id", roomID).Msg("booking updated but room release failed")
	}
}

// afterMutation publishes the change event and drops cached summaries. Both
// are best-effort.
func (s *BookingService) afterMutation(ctx context.Context, action string, booking *models.Booking) {
	if s.publisher != nil {
		event := events.Event{
			Type:      events.TypeBookingChanged,
			Action:    action,
			EntityID:  booking.ID,
			Reference: booking.Reference,
			Status:    string(booking.Status),
			At:        time.Now(),
		}
		if err := s.publisher.Publish(ctx, booking.Reference, event); err != nil {
			s.log.Warn().Err(err).Str("reference", booking.Reference).Msg("failed to publish booking event")
		}
	}
	if s.cache != nil {
		if err := s.cache.InvalidateSummaries(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate summary cache")
		}
	}
}

// nightsBetween counts whole calendar nights between two dates, ignoring any
// time-of-day component the client sent.
func nightsBetween(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

func toBookingStatus(raw interface{}) (models.BookingStatus, bool) {
	switch v := raw.(type) {
	case models.BookingStatus:
		if models.ValidBookingStatus(v) {
			return v, true
		}
	case string:
		status := models.BookingStatus(strings.ToLower(strings.TrimSpace(v)))
		if models.ValidBookingStatus(status) {
			return status, true
		}
	}
	return "", false
}

func toDate(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
