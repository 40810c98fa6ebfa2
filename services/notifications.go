package services

import (
	"fmt"
	"log"

	"hotel-booking-server/models"
	"hotel-booking-server/storage"
)

// NotificationService records in-app notifications for booking events.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (ns *NotificationService) notify(userID uint, text, notificationType, typeAction string) error {
	notification := models.Notification{
		UserID:     userID,
		Text:       text,
		Type:       notificationType,
		TypeAction: typeAction,
	}

	if err := storage.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to create notification for user %d: %v", userID, err)
		return err
	}
	return nil
}

// NotifyBookingCreated tells the guest a confirmation email is on the way.
func (ns *NotificationService) NotifyBookingCreated(userID uint, hotelName string) error {
	text := fmt.Sprintf("Your booking at %s was created. Check your email to confirm it.", hotelName)
	return ns.notify(userID, text, models.NotificationTypeInfo, "booking_created")
}

// NotifyBookingConfirmed tells the guest their booking is locked in.
func (ns *NotificationService) NotifyBookingConfirmed(userID uint, hotelName string) error {
	text := fmt.Sprintf("Your booking at %s is confirmed. See you soon!", hotelName)
	return ns.notify(userID, text, models.NotificationTypeSuccess, "booking_confirmed")
}

// NotifyBookingCancelled tells the guest their booking was removed.
func (ns *NotificationService) NotifyBookingCancelled(userID uint, hotelName string) error {
	text := fmt.Sprintf("Your booking at %s was cancelled.", hotelName)
	return ns.notify(userID, text, models.NotificationTypeWarn, "booking_cancelled")
}

// Global notification service instance
var NotificationServiceInstance = NewNotificationService()
