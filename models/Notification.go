package models

import "gorm.io/gorm"

// Notification types mirror the severity of the event they announce.
const (
	NotificationTypeInfo    = "info"
	NotificationTypeWarn    = "warn"
	NotificationTypeSuccess = "success"
	NotificationTypeFail    = "fail"
)

type Notification struct {
	gorm.Model
	UserID     uint   `json:"userID" gorm:"not null;index"`
	Text       string `json:"text" gorm:"not null;type:text"`
	IsRead     bool   `json:"isRead" gorm:"default:false"`
	Type       string `json:"type" gorm:"type:varchar(20);default:info"`
	TypeAction string `json:"typeAction"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
