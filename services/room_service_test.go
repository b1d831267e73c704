package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"grandstay-backend/failure"
	"grandstay-backend/models"
	"grandstay-backend/repository"
)

func newRoomService(rooms *MockRoomRepository, bookings *MockBookingRepository) *RoomService {
	return NewRoomService(rooms, bookings, nil, nil, zerolog.Nop())
}

func validRoomInput() CreateRoomInput {
	return CreateRoomInput{
		Number:       "304a",
		Type:         "Deluxe",
		MaxOccupancy: 3,
		Floor:        3,
		Amenities:    []string{"wifi", "minibar"},
		Price:        8500,
		Currency:     "PKR",
	}
}

func TestRoomCreate_NormalizesNumberAndDefaultsStatus(t *testing.T) {
	mockRooms := &MockRoomRepository{}
	service := newRoomService(mockRooms, &MockBookingRepository{})

	ctx := context.Background()
	mockRooms.On("Create", ctx, mock.AnythingOfType("*models.Room")).Return(nil).Once()

	room, err := service.Create(ctx, validRoomInput())

	require.NoError(t, err)
	assert.Equal(t, "304A", room.Number)
	assert.Equal(t, models.RoomStatusAvailable, room.Status)
	assert.JSONEq(t, `["wifi","minibar"]`, string(room.Amenities))
}

func TestRoomCreate_DuplicateNumberConflict(t *testing.T) {
	mockRooms := &MockRoomRepository{}
	service := newRoomService(mockRooms, &MockBookingRepository{})

	ctx := context.Background()
	mockRooms.On("Create", ctx, mock.AnythingOfType("*models.Room")).
		Return(failure.Conflict("room already exists")).Once()

	room, err := service.Create(ctx, validRoomInput())

	assert.Nil(t, room)
	assert.True(t, failure.IsConflict(err))
	assert.Equal(t, 409, failure.GetCode(err))
}

func TestRoomCreate_ValidationErrors(t *testing.T) {
	service := newRoomService(&MockRoomRepository{}, &MockBookingRepository{})
	ctx := context.Background()

	testCases := []struct {
		name        string
		mutate      func(*CreateRoomInput)
		expectedErr string
	}{
		{"empty number", func(i *CreateRoomInput) { i.Number = "" }, "number must be 1-10 alphanumeric characters"},
		{"number too long", func(i *CreateRoomInput) { i.Number = "12345678901" }, "number must be 1-10 alphanumeric characters"},
		{"number with symbols", func(i *CreateRoomInput) { i.Number = "30-4" }, "number must be 1-10 alphanumeric characters"},
		{"zero occupancy", func(i *CreateRoomInput) { i.MaxOccupancy = 0 }, "max_occupancy must be between 1 and 10"},
		{"occupancy too high", func(i *CreateRoomInput) { i.MaxOccupancy = 11 }, "max_occupancy must be between 1 and 10"},
		{"floor out of range", func(i *CreateRoomInput) { i.Floor = 21 }, "floor must be between 1 and 20"},
		{"non-positive price", func(i *CreateRoomInput) { i.Price = 0 }, "price must be greater than zero"},
		{"no amenities", func(i *CreateRoomInput) { i.Amenities = nil }, "amenities must not be empty"},
		{"bad currency", func(i *CreateRoomInput) { i.Currency = "EUR" }, "currency must be PKR or USD"},
		{"bad status", func(i *CreateRoomInput) { i.Status = "closed" }, "invalid room status"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRoomInput()
			tc.mutate(&input)
			room, err := service.Create(ctx, input)
			assert.Nil(t, room)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedErr)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestRoomUpdate_AllowListAndValidation(t *testing.T) {
	mockRooms := &MockRoomRepository{}
	service := newRoomService(mockRooms, &MockBookingRepository{})

	ctx := context.Background()
	mockRooms.On("Update", ctx, uint(7), map[string]interface{}{
		"status": "maintenance",
		"price":  9000.0,
	}).Return(&models.Room{ID: 7, Status: models.RoomStatusMaintenance, Price: 9000}, nil).Once()

	room, err := service.Update(ctx, 7, map[string]interface{}{
		"id":     99,
		"status": "maintenance",
		"price":  9000.0,
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusMaintenance, room.Status)
	mockRooms.AssertExpectations(t)
}

func TestRoomUpdate_EmptyPatchRejected(t *testing.T) {
	service := newRoomService(&MockRoomRepository{}, &MockBookingRepository{})

	_, err := service.Update(context.Background(), 7, map[string]interface{}{"createdAt": "now"})

	require.Error(t, err)
	assert.Equal(t, 422, failure.GetCode(err))
}

func TestRoomUpdate_InvalidStatusRejected(t *testing.T) {
	service := newRoomService(&MockRoomRepository{}, &MockBookingRepository{})

	_, err := service.Update(context.Background(), 7, map[string]interface{}{"status": "closed"})

	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestRoomDelete_BlockedByActiveBookings(t *testing.T) {
	mockRooms := &MockRoomRepository{}
	mockBookings := &MockBookingRepository{}
	service := newRoomService(mockRooms, mockBookings)

	ctx := context.Background()
	roomID := uint(7)
	mockBookings.On("List", ctx, repository.BookingFilter{Statuses: models.ActiveBookingStatuses, RoomID: &roomID}).
		Return([]models.Booking{{ID: 3, RoomID: &roomID, Status: models.BookingStatusConfirmed}}, nil).Once()

	err := service.Delete(ctx, roomID)

	assert.True(t, failure.IsConflict(err))
	mockRooms.AssertNotCalled(t, "Delete")
}

func TestRoomDelete_FreeRoomRemoved(t *testing.T) {
	mockRooms := &MockRoomRepository{}
	mockBookings := &MockBookingRepository{}
	service := newRoomService(mockRooms, mockBookings)

	ctx := context.Background()
	roomID := uint(8)
	mockBookings.On("List", ctx, repository.BookingFilter{Statuses: models.ActiveBookingStatuses, RoomID: &roomID}).
		Return([]models.Booking{}, nil).Once()
	mockRooms.On("Delete", ctx, roomID).Return(nil).Once()

	err := service.Delete(ctx, roomID)

	require.NoError(t, err)
	mockRooms.AssertExpectations(t)
}

func TestRoomList_InvalidStatusFilter(t *testing.T) {
	service := newRoomService(&MockRoomRepository{}, &MockBookingRepository{})

	_, err := service.List(context.Background(), "", models.RoomStatus("closed"))

	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}
