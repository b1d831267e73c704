package repository

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"grandstay-backend/models"
)

// RoomFilter narrows List results. Zero values mean "no constraint".
type RoomFilter struct {
	Type   string
	Status models.RoomStatus
}

// RoomRepository is the sole mutator of room inventory.
type RoomRepository interface {
	List(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	Get(ctx context.Context, id uint) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Room, error)
	Delete(ctx context.Context, id uint) error
}

type gormRoomRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewRoomRepository(db *gorm.DB, log zerolog.Logger) RoomRepository {
	return &gormRoomRepository{db: db, log: log.With().Str("repository", "rooms").Logger()}
}

func (r *gormRoomRepository) List(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	q := r.db.WithContext(ctx).Model(&models.Room{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var rooms []models.Room
	if err := q.Order("number").Find(&rooms).Error; err != nil {
		return nil, mapStorageError(r.log, err, "rooms")
	}
	return rooms, nil
}

func (r *gormRoomRepository) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, mapStorageError(r.log, err, "room")
	}
	return &room, nil
}

func (r *gormRoomRepository) Create(ctx context.Context, room *models.Room) error {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return mapStorageError(r.log, err, "room number")
	}
	return nil
}

func (r *gormRoomRepository) Update(ctx context.Context, id uint, patch map[string]interface{}) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, mapStorageError(r.log, err, "room")
	}
	if err := r.db.WithContext(ctx).Model(&room).Updates(patch).Error; err != nil {
		return nil, mapStorageError(r.log, err, "room number")
	}
	return &room, nil
}

func (r *gormRoomRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Room{}, id)
	if result.Error != nil {
		return mapStorageError(r.log, result.Error, "room")
	}
	if result.RowsAffected == 0 {
		return mapStorageError(r.log, gorm.ErrRecordNotFound, "room")
	}
	return nil
}

var _ RoomRepository = (*gormRoomRepository)(nil)
