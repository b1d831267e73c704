package repository

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"grandstay-backend/models"
)

type InquiryRepository interface {
	List(ctx context.Context) ([]models.Inquiry, error)
	Get(ctx context.Context, id uint) (*models.Inquiry, error)
	Create(ctx context.Context, inquiry *models.Inquiry) error
	Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Inquiry, error)
}

type gormInquiryRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewInquiryRepository(db *gorm.DB, log zerolog.Logger) InquiryRepository {
	return &gormInquiryRepository{db: db, log: log.With().Str("repository", "inquiries").Logger()}
}

func (r *gormInquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&inquiries).Error; err != nil {
		return nil, mapStorageError(r.log, err, "inquiries")
	}
	return inquiries, nil
}

func (r *gormInquiryRepository) Get(ctx context.Context, id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		return nil, mapStorageError(r.log, err, "inquiry")
	}
	return &inquiry, nil
}

func (r *gormInquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	if err := r.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return mapStorageError(r.log, err, "inquiry")
	}
	return nil
}

func (r *gormInquiryRepository) Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		return nil, mapStorageError(r.log, err, "inquiry")
	}
	if err := r.db.WithContext(ctx).Model(&inquiry).Updates(patch).Error; err != nil {
		return nil, mapStorageError(r.log, err, "inquiry")
	}
	return &inquiry, nil
}

var _ InquiryRepository = (*gormInquiryRepository)(nil)
