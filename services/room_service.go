package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"grandstay-backend/events"
	"grandstay-backend/failure"
	"grandstay-backend/models"
	"grandstay-backend/repository"
)

var roomNumberPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

// RoomService owns room inventory CRUD and its validation rules.
type RoomService struct {
	rooms    repository.RoomRepository
	bookings repository.BookingRepository

	cache     HoldCache
	publisher EventPublisher
	log       zerolog.Logger
}

func NewRoomService(rooms repository.RoomRepository, bookings repository.BookingRepository, cache HoldCache, publisher EventPublisher, log zerolog.Logger) *RoomService {
	return &RoomService{
		rooms:     rooms,
		bookings:  bookings,
		cache:     cache,
		publisher: publisher,
		log:       log.With().Str("service", "rooms").Logger(),
	}
}

type CreateRoomInput struct {
	Number       string   `json:"number"`
	Type         string   `json:"type"`
	MaxOccupancy int      `json:"maxOccupancy"`
	Floor        int      `json:"floor"`
	Amenities    []string `json:"amenities"`
	Status       string   `json:"status"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
}

func (s *RoomService) Create(ctx context.Context, input CreateRoomInput) (*models.Room, error) {
	number := strings.ToUpper(strings.TrimSpace(input.Number))
	if !roomNumberPattern.MatchString(number) {
		return nil, failure.BadRequest("number must be 1-10 alphanumeric characters")
	}
	if input.MaxOccupancy < 1 || input.MaxOccupancy > 10 {
		return nil, failure.BadRequest("max_occupancy must be between 1 and 10")
	}
	if input.Floor < 1 || input.Floor > 20 {
		return nil, failure.BadRequest("floor must be between 1 and 20")
	}
	if input.Price <= 0 {
		return nil, failure.BadRequest("price must be greater than zero")
	}
	if len(input.Amenities) == 0 {
		return nil, failure.BadRequest("amenities must not be empty")
	}
	if !validCurrency(input.Currency) {
		return nil, failure.BadRequest("currency must be PKR or USD")
	}
	status := models.RoomStatus(input.Status)
	if input.Status == "" {
		status = models.RoomStatusAvailable
	} else if !models.ValidRoomStatus(status) {
		return nil, failure.BadRequest("invalid room status: " + input.Status)
	}

	amenities, err := json.Marshal(input.Amenities)
	if err != nil {
		return nil, failure.InternalError(err)
	}

	room := &models.Room{
		Number:       number,
		Type:         strings.TrimSpace(input.Type),
		MaxOccupancy: input.MaxOccupancy,
		Floor:        input.Floor,
		Amenities:    datatypes.JSON(amenities),
		Status:       status,
		Price:        input.Price,
		Currency:     input.Currency,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "created", room)
	return room, nil
}

func (s *RoomService) List(ctx context.Context, roomType string, status models.RoomStatus) ([]models.Room, error) {
	if status != "" && !models.ValidRoomStatus(status) {
		return nil, failure.BadRequest("invalid room status: " + string(status))
	}
	return s.rooms.List(ctx, repository.RoomFilter{Type: roomType, Status: status})
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	return s.rooms.Get(ctx, id)
}

// roomPatchFields mirrors the booking allow-list idea for rooms: unknown keys
// are dropped, identity and timestamps stay immutable.
var roomPatchFields = map[string]string{
	"number":        "number",
	"type":          "type",
	"maxOccupancy":  "max_occupancy",
	"max_occupancy": "max_occupancy",
	"floor":         "floor",
	"amenities":     "amenities",
	"status":        "status",
	"price":         "price",
	"currency":      "currency",
}

func (s *RoomService) Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Room, error) {
	sanitized := make(map[string]interface{}, len(patch))
	for key, value := range patch {
		column, ok := roomPatchFields[key]
		if !ok {
			continue
		}
		sanitized[column] = value
	}
	if len(sanitized) == 0 {
		return nil, failure.Unprocessable("no updatable fields in patch")
	}

	if raw, ok := sanitized["status"]; ok {
		status, isString := raw.(string)
		if !isString || !models.ValidRoomStatus(models.RoomStatus(status)) {
			return nil, failure.BadRequest("invalid room status")
		}
	}
	if raw, ok := sanitized["currency"]; ok {
		currency, isString := raw.(string)
		if !isString || !validCurrency(currency) {
			return nil, failure.BadRequest("currency must be PKR or USD")
		}
	}
	if raw, ok := sanitized["amenities"]; ok {
		encoded, err := json.Marshal(raw)
		if err != nil {
			return nil, failure.BadRequest("invalid amenities")
		}
		sanitized["amenities"] = datatypes.JSON(encoded)
	}
	if raw, ok := sanitized["number"]; ok {
		number, isString := raw.(string)
		if !isString || !roomNumberPattern.MatchString(strings.TrimSpace(number)) {
			return nil, failure.BadRequest("number must be 1-10 alphanumeric characters")
		}
		sanitized["number"] = strings.ToUpper(strings.TrimSpace(number))
	}

	room, err := s.rooms.Update(ctx, id, sanitized)
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "updated", room)
	return room, nil
}

// Delete refuses to remove a room that an active booking still references;
// deleting held inventory would orphan those bookings.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	active, err := s.bookings.List(ctx, repository.BookingFilter{
		Statuses: models.ActiveBookingStatuses,
		RoomID:   &id,
	})
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return failure.Conflict("room has active bookings and cannot be deleted")
	}

	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}

	s.afterMutation(ctx, "deleted", &models.Room{ID: id})
	return nil
}

func (s *RoomService) afterMutation(ctx context.Context, action string, room *models.Room) {
	if s.publisher != nil {
		event := events.Event{
			Type:     events.TypeRoomChanged,
			Action:   action,
			EntityID: room.ID,
			Status:   string(room.Status),
			At:       time.Now(),
		}
		if err := s.publisher.Publish(ctx, room.Number, event); err != nil {
			s.log.Warn().Err(err).Uint("room_id", room.ID).Msg("failed to publish room event")
		}
	}
	if s.cache != nil {
		if err := s.cache.InvalidateSummaries(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate summary cache")
		}
	}
}
