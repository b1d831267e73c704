package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked-in"
	BookingStatusCheckedOut BookingStatus = "checked-out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is a member of the booking status enum.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn,
		BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s allows no further lifecycle transitions. A
// booking in a terminal status no longer holds its room.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCheckedOut
}

// ActiveBookingStatuses are the statuses under which a booking occupies its
// room for availability purposes.
var ActiveBookingStatuses = []BookingStatus{BookingStatusConfirmed, BookingStatusCheckedIn}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ValidPaymentStatus reports whether s is a member of the payment status enum.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"column:reference;uniqueIndex;size:32" json:"reference"`

	GuestName   string `gorm:"column:guest_name;size:128" json:"guestName"`
	Email       string `gorm:"column:email;size:128" json:"email"`
	Phone       string `gorm:"column:phone;size:32" json:"phone,omitempty"`
	Nationality string `gorm:"column:nationality;size:64" json:"nationality,omitempty"`

	CheckIn  time.Time `gorm:"column:check_in;index" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out;index" json:"checkOut"`

	RoomID     *uint  `gorm:"column:room_id;index" json:"roomId,omitempty"`
	RoomType   string `gorm:"column:room_type;size:64" json:"roomType"`
	RoomNumber string `gorm:"column:room_number;size:10" json:"roomNumber,omitempty"`

	Guests      int     `gorm:"column:guests;default:1" json:"guests"`
	Nights      int     `gorm:"column:nights" json:"nights"`
	TotalAmount float64 `gorm:"column:total_amount" json:"totalAmount"`
	Currency    string  `gorm:"column:currency;size:8;default:PKR" json:"currency"`

	SpecialRequests string `gorm:"column:special_requests;type:text" json:"specialRequests,omitempty"`
	PurposeOfVisit  string `gorm:"column:purpose_of_visit;size:128" json:"purposeOfVisit,omitempty"`
	Notes           string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	PaymentMethod string        `gorm:"column:payment_method;size:32" json:"paymentMethod,omitempty"`
	PaymentStatus PaymentStatus `gorm:"column:payment_status;size:32;default:pending" json:"paymentStatus"`
	Status        BookingStatus `gorm:"column:status;size:32;index" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Room *Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
