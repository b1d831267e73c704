package repository

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"grandstay-backend/models"
)

// BookingFilter narrows List results. An empty status set means all statuses.
type BookingFilter struct {
	Statuses []models.BookingStatus
	RoomID   *uint
}

// BookingRepository is the sole mutator of booking lifecycle state.
type BookingRepository interface {
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	Get(ctx context.Context, id uint) (*models.Booking, error)
	GetByReference(ctx context.Context, reference string) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Booking, error)
}

type gormBookingRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewBookingRepository(db *gorm.DB, log zerolog.Logger) BookingRepository {
	return &gormBookingRepository{db: db, log: log.With().Str("repository", "bookings").Logger()}
}

func (r *gormBookingRepository) List(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}
	if filter.RoomID != nil {
		q = q.Where("room_id = ?", *filter.RoomID)
	}
	var bookings []models.Booking
	if err := q.Order("check_in").Find(&bookings).Error; err != nil {
		return nil, mapStorageError(r.log, err, "bookings")
	}
	return bookings, nil
}

func (r *gormBookingRepository) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, mapStorageError(r.log, err, "booking")
	}
	return &booking, nil
}

func (r *gormBookingRepository) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&booking).Error; err != nil {
		return nil, mapStorageError(r.log, err, "booking")
	}
	return &booking, nil
}

func (r *gormBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return mapStorageError(r.log, err, "booking reference")
	}
	return nil
}

func (r *gormBookingRepository) Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, mapStorageError(r.log, err, "booking")
	}
	if err := r.db.WithContext(ctx).Model(&booking).Updates(patch).Error; err != nil {
		return nil, mapStorageError(r.log, err, "booking")
	}
	return &booking, nil
}

var _ BookingRepository = (*gormBookingRepository)(nil)
