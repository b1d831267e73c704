package models

import (
	"time"

	"gorm.io/gorm"
)

type InquiryStatus string

const (
	InquiryStatusNew     InquiryStatus = "new"
	InquiryStatusReplied InquiryStatus = "replied"
	InquiryStatusClosed  InquiryStatus = "closed"
)

type Inquiry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"column:name;size:128" json:"name"`
	Email   string `gorm:"column:email;size:128" json:"email"`
	Subject string `gorm:"column:subject;size:255" json:"subject"`
	Message string `gorm:"column:message;type:text" json:"message"`
	Reply   string `gorm:"column:reply;type:text" json:"reply,omitempty"`

	Status InquiryStatus `gorm:"column:status;size:32;default:new" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
