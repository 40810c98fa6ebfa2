package routes

import (
	"fmt"

	"hotel-booking-server/models"
	"hotel-booking-server/storage"
	"hotel-booking-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

var notificationTypes = []string{
	models.NotificationTypeInfo,
	models.NotificationTypeWarn,
	models.NotificationTypeSuccess,
	models.NotificationTypeFail,
}

type CreateNotificationInput struct {
	UserID     uint   `json:"userID"`
	Text       string `json:"text" validate:"required"`
	Type       string `json:"type"`
	TypeAction string `json:"typeAction"`
}

type UpdateNotificationInput struct {
	Text   string `json:"text"`
	IsRead *bool  `json:"isRead"`
}

// ListNotifications returns the requester's notifications; admins see all.
func ListNotifications(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().GetStringDefault("role", "user")

	query := storage.DB.Order("created_at DESC")
	if role != "admin" {
		query = query.Where("user_id = ?", userID)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot find Notification.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"count":   len(notifications),
		"data":    notifications,
	})
}

func GetNotification(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().GetStringDefault("role", "user")
	notificationID := ctx.Params().GetUintDefault("id", 0)

	var notification models.Notification
	if err := storage.DB.First(&notification, notificationID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No notification with the id of %d.", notificationID), ctx)
		return
	}

	if !utils.CanAccess(userID, notification.UserID, role) {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized",
			fmt.Sprintf("User %d is not authorized to view this notification.", userID), ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    notification,
	})
}

// CreateNotification is admin only (enforced by route middleware).
func CreateNotification(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateNotificationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.UserID == 0 {
		input.UserID = userID
	}
	if input.Type == "" {
		input.Type = models.NotificationTypeInfo
	}
	if !slices.Contains(notificationTypes, input.Type) {
		utils.CreateError(iris.StatusBadRequest, "Bad Request",
			fmt.Sprintf("Notification type must be one of %v.", notificationTypes), ctx)
		return
	}

	notification := models.Notification{
		UserID:     input.UserID,
		Text:       input.Text,
		Type:       input.Type,
		TypeAction: input.TypeAction,
	}

	if err := storage.DB.Create(&notification).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot create Notification.", ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"data":    notification,
	})
}

func UpdateNotification(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().GetStringDefault("role", "user")
	notificationID := ctx.Params().GetUintDefault("id", 0)

	var notification models.Notification
	if err := storage.DB.First(&notification, notificationID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No notification with the id of %d.", notificationID), ctx)
		return
	}

	if !utils.CanAccess(userID, notification.UserID, role) {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized",
			fmt.Sprintf("User %d is not authorized to update this notification.", userID), ctx)
		return
	}

	var input UpdateNotificationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Text != "" {
		notification.Text = input.Text
	}
	if input.IsRead != nil {
		notification.IsRead = *input.IsRead
	}

	if err := storage.DB.Save(&notification).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot update Notification.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    notification,
	})
}

// DeleteNotification is admin only (enforced by route middleware).
func DeleteNotification(ctx iris.Context) {
	notificationID := ctx.Params().GetUintDefault("id", 0)

	var notification models.Notification
	if err := storage.DB.First(&notification, notificationID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No notification with the id of %d.", notificationID), ctx)
		return
	}

	if err := storage.DB.Unscoped().Delete(&notification).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot delete Notification.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    iris.Map{},
	})
}
