package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID  uint   `json:"userID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	HotelID uint   `json:"hotelID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Comment string `json:"comment" gorm:"type:text"`
	Rating  int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`

	// Relationships
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}
