package repository

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"grandstay-backend/models"
)

// PricingRepository is the rate table keyed by room type.
type PricingRepository interface {
	Get(ctx context.Context, roomType string) (*models.RoomPricing, error)
	List(ctx context.Context) ([]models.RoomPricing, error)
	Upsert(ctx context.Context, pricing *models.RoomPricing) error
}

type gormPricingRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewPricingRepository(db *gorm.DB, log zerolog.Logger) PricingRepository {
	return &gormPricingRepository{db: db, log: log.With().Str("repository", "pricing").Logger()}
}

func (r *gormPricingRepository) Get(ctx context.Context, roomType string) (*models.RoomPricing, error) {
	var pricing models.RoomPricing
	if err := r.db.WithContext(ctx).Where("room_type = ?", roomType).First(&pricing).Error; err != nil {
		return nil, mapStorageError(r.log, err, "room pricing")
	}
	return &pricing, nil
}

func (r *gormPricingRepository) List(ctx context.Context) ([]models.RoomPricing, error) {
	var pricing []models.RoomPricing
	if err := r.db.WithContext(ctx).Order("room_type").Find(&pricing).Error; err != nil {
		return nil, mapStorageError(r.log, err, "room pricing")
	}
	return pricing, nil
}

func (r *gormPricingRepository) Upsert(ctx context.Context, pricing *models.RoomPricing) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"base_price", "currency", "season_multiplier", "weekend_multiplier"}),
	}).Create(pricing).Error
	if err != nil {
		return mapStorageError(r.log, err, "room pricing")
	}
	return nil
}

var _ PricingRepository = (*gormPricingRepository)(nil)
