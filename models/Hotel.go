package models

import "gorm.io/gorm"

type Hotel struct {
	gorm.Model
	Name        string  `json:"name" gorm:"uniqueIndex;not null"`
	Picture     string  `json:"picture"`
	Description string  `json:"description" gorm:"type:text"`
	About       string  `json:"about" gorm:"type:text"`
	Address     string  `json:"address"`
	District    string  `json:"district" gorm:"index"`
	Province    string  `json:"province" gorm:"index"`
	PostalCode  string  `json:"postalCode" gorm:"type:varchar(5)"`
	Tel         string  `json:"tel"`
	Region      string  `json:"region" gorm:"index"`
	Size        string  `json:"size" gorm:"default:Small"`
	Guests      int     `json:"guests" gorm:"default:2;check:guests >= 2 AND guests <= 4"`
	DailyRate   float64 `json:"dailyRate" gorm:"not null;index"`

	// Relationships
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:HotelID"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:HotelID"`
}
