package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	Email               string         `json:"email" gorm:"uniqueIndex"`
	Password            string         `json:"-"`
	Tel                 string         `json:"tel"`
	Role                string         `json:"role" gorm:"type:varchar(20);default:user;index"` // user, admin
	IsVerified          *bool          `json:"isVerified" gorm:"default:false"`
	VerificationCode    string         `json:"-"`
	AllowsNotifications *bool          `json:"allowsNotifications"`
	PushTokens          datatypes.JSON `json:"pushTokens"`
	Bookings            []Booking      `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	Reviews             []Review       `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}

// Custom JSON marshaling so the push token JSON column renders as an array
// and never as raw bytes or null.
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		PushTokens []string `json:"pushTokens"`
		*Alias
	}{
		PushTokens: []string{},
		Alias:      (*Alias)(u),
	}

	if u.PushTokens != nil {
		var tokens []string
		if err := json.Unmarshal(u.PushTokens, &tokens); err == nil {
			aux.PushTokens = tokens
		}
	}

	return json.Marshal(aux)
}
