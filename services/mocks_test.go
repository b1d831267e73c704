package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"grandstay-backend/cache"
	"grandstay-backend/events"
	"grandstay-backend/models"
	"grandstay-backend/repository"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) List(ctx context.Context, filter repository.RoomFilter) ([]models.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockRoomRepository) Get(ctx context.Context, id uint) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomRepository) Create(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Room, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Get(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Booking, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

type MockPricingRepository struct {
	mock.Mock
}

func (m *MockPricingRepository) Get(ctx context.Context, roomType string) (*models.RoomPricing, error) {
	args := m.Called(ctx, roomType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomPricing), args.Error(1)
}

func (m *MockPricingRepository) List(ctx context.Context) ([]models.RoomPricing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RoomPricing), args.Error(1)
}

func (m *MockPricingRepository) Upsert(ctx context.Context, pricing *models.RoomPricing) error {
	args := m.Called(ctx, pricing)
	return args.Error(0)
}

type MockHoldCache struct {
	mock.Mock
}

func (m *MockHoldCache) AcquireRoomHold(ctx context.Context, roomID uint, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, roomID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockHoldCache) ReleaseRoomHold(ctx context.Context, roomID uint) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *MockHoldCache) InvalidateSummaries(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) GetSummary(ctx context.Context, asOf time.Time) (cache.Summary, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cache.Summary), args.Error(1)
}

func (m *MockSummaryCache) SetSummary(ctx context.Context, asOf time.Time, summary cache.Summary) error {
	args := m.Called(ctx, asOf, summary)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, key string, event events.Event) error {
	args := m.Called(ctx, key, event)
	return args.Error(0)
}

type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) Get(ctx context.Context, id uint) (*models.Inquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}

func (m *MockInquiryRepository) Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Inquiry, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func uintPtr(v uint) *uint {
	return &v
}
