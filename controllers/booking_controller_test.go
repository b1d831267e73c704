package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grandstay-backend/failure"
	"grandstay-backend/models"
	"grandstay-backend/repository"
	"grandstay-backend/services"
)

// In-memory repositories; just enough behavior for the handler round trip.

type stubBookingRepo struct {
	bookings map[uint]*models.Booking
	nextID   uint
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: map[uint]*models.Booking{}, nextID: 1}
}

func (r *stubBookingRepo) List(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBookingRepo) Get(ctx context.Context, id uint) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, failure.NotFound("booking")
	}
	copied := *b
	return &copied, nil
}

func (r *stubBookingRepo) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.Reference == reference {
			copied := *b
			return &copied, nil
		}
	}
	return nil, failure.NotFound("booking")
}

func (r *stubBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = r.nextID
	r.nextID++
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *stubBookingRepo) Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, failure.NotFound("booking")
	}
	if status, ok := patch["status"].(models.BookingStatus); ok {
		b.Status = status
	}
	if notes, ok := patch["notes"].(string); ok {
		b.Notes = notes
	}
	copied := *b
	return &copied, nil
}

type stubRoomRepo struct{}

func (stubRoomRepo) List(ctx context.Context, filter repository.RoomFilter) ([]models.Room, error) {
	return nil, nil
}
func (stubRoomRepo) Get(ctx context.Context, id uint) (*models.Room, error) {
	return nil, failure.NotFound("room")
}
func (stubRoomRepo) Create(ctx context.Context, room *models.Room) error { return nil }
func (stubRoomRepo) Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Room, error) {
	return nil, failure.NotFound("room")
}
func (stubRoomRepo) Delete(ctx context.Context, id uint) error { return nil }

type stubPricingRepo struct {
	byType map[string]*models.RoomPricing
}

func (r stubPricingRepo) Get(ctx context.Context, roomType string) (*models.RoomPricing, error) {
	p, ok := r.byType[roomType]
	if !ok {
		return nil, failure.NotFound("room pricing")
	}
	return p, nil
}
func (r stubPricingRepo) List(ctx context.Context) ([]models.RoomPricing, error) { return nil, nil }
func (r stubPricingRepo) Upsert(ctx context.Context, pricing *models.RoomPricing) error {
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newBookingTestRouter(bookings *stubBookingRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()

	pricing := services.NewPricingService(stubPricingRepo{byType: map[string]*models.RoomPricing{
		"Deluxe Mountain View": {RoomType: "Deluxe Mountain View", BasePrice: 8500, Currency: "PKR"},
	}}, 5000, "PKR", log)
	availability := services.NewAvailabilityService(stubRoomRepo{}, bookings, nil, log)
	service := services.NewBookingService(bookings, stubRoomRepo{}, availability, pricing, log)
	controller := NewBookingController(service)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/bookings", controller.CreateBooking)
	api.GET("/bookings/:id", controller.GetBooking)
	api.PATCH("/bookings/:id", controller.UpdateBooking)
	api.POST("/bookings/:id/cancel", controller.CancelBooking)
	return router
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateBookingEndpoint_RecomputesAmount(t *testing.T) {
	router := newBookingTestRouter(newStubBookingRepo())

	recorder := performJSON(router, http.MethodPost, "/api/bookings", gin.H{
		"guestName":   "Ayesha Khan",
		"email":       "ayesha@example.com",
		"checkIn":     "2025-03-01",
		"checkOut":    "2025-03-04",
		"roomType":    "Deluxe Mountain View",
		"guests":      2,
		"totalAmount": 1, // ignored: the transport never binds amount fields
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(resp.Data, &booking))
	assert.Equal(t, 3, booking.Nights)
	assert.Equal(t, 25500.0, booking.TotalAmount)
	assert.Regexp(t, `^GS-[A-Z0-9]{8}$`, booking.Reference)
}

func TestCreateBookingEndpoint_MissingFields(t *testing.T) {
	router := newBookingTestRouter(newStubBookingRepo())

	recorder := performJSON(router, http.MethodPost, "/api/bookings", gin.H{
		"guestName": "Ayesha Khan",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestGetBookingEndpoint_NotFound(t *testing.T) {
	router := newBookingTestRouter(newStubBookingRepo())

	recorder := performJSON(router, http.MethodGet, "/api/bookings/42", nil)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "booking not found", resp.Error)
}

func TestUpdateBookingEndpoint_EmptyPatch(t *testing.T) {
	repo := newStubBookingRepo()
	repo.bookings[1] = &models.Booking{ID: 1, Status: models.BookingStatusConfirmed}
	router := newBookingTestRouter(repo)

	recorder := performJSON(router, http.MethodPatch, "/api/bookings/1", gin.H{
		"id": "attacker-id",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestCancelBookingEndpoint_Idempotent(t *testing.T) {
	repo := newStubBookingRepo()
	repo.bookings[1] = &models.Booking{ID: 1, Status: models.BookingStatusConfirmed}
	router := newBookingTestRouter(repo)

	first := performJSON(router, http.MethodPost, "/api/bookings/1/cancel", gin.H{"reason": "plans changed"})
	second := performJSON(router, http.MethodPost, "/api/bookings/1/cancel", gin.H{"reason": "plans changed"})

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	var booking models.Booking
	require.NoError(t, json.Unmarshal(resp.Data, &booking))
	assert.Equal(t, models.BookingStatusCancelled, booking.Status)
}
