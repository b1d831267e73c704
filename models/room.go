package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusOutOfOrder  RoomStatus = "out-of-order"
)

// ValidRoomStatus reports whether s is a member of the room status enum.
func ValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusOutOfOrder:
		return true
	}
	return false
}

// Room is the inventory record. Status is the room's own advisory state;
// whether the room is actually free for a date range is decided against
// bookings, not this field alone.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Number       string         `gorm:"column:number;uniqueIndex;type:varchar(10)" json:"number"`
	Type         string         `gorm:"column:type;size:64;index" json:"type"`
	MaxOccupancy int            `gorm:"column:max_occupancy" json:"maxOccupancy"`
	Floor        int            `gorm:"column:floor" json:"floor"`
	Amenities    datatypes.JSON `gorm:"column:amenities" json:"amenities"`
	Status       RoomStatus     `gorm:"column:status;size:32;default:available" json:"status"`
	Price        float64        `gorm:"column:price" json:"price"`
	Currency     string         `gorm:"column:currency;size:8;default:PKR" json:"currency"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
