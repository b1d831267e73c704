package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomPricing is the rate table, keyed by room type. Read-only from the
// booking path; mutated only through the administrative upsert.
type RoomPricing struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomType          string  `gorm:"column:room_type;uniqueIndex;size:64" json:"roomType"`
	BasePrice         float64 `gorm:"column:base_price" json:"basePrice"`
	Currency          string  `gorm:"column:currency;size:8;default:PKR" json:"currency"`
	SeasonMultiplier  float64 `gorm:"column:season_multiplier;default:1" json:"seasonMultiplier"`
	WeekendMultiplier float64 `gorm:"column:weekend_multiplier;default:1" json:"weekendMultiplier"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
