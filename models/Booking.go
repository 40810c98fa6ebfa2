package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. A booking starts out pending and becomes confirmed once
// the guest follows the emailed confirmation link.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
)

type Booking struct {
	gorm.Model
	GuestCount        int       `json:"guestCount" gorm:"not null"`
	Room              string    `json:"room" gorm:"not null"`
	CheckInDate       time.Time `json:"checkInDate" gorm:"not null"`
	CheckOutDate      time.Time `json:"checkOutDate" gorm:"not null;index"`
	UserID            uint      `json:"userID" gorm:"not null;index"`
	HotelID           uint      `json:"hotelID" gorm:"not null;index"`
	Status            string    `json:"status" gorm:"type:varchar(20);default:pending;index"`
	ConfirmationToken string    `json:"-"` // set while pending, cleared on confirmation

	// Relationships
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}
