package routes

import (
	"crypto/subtle"
	"fmt"
	"os"
	"time"

	"hotel-booking-server/models"
	"hotel-booking-server/services"
	"hotel-booking-server/storage"
	"hotel-booking-server/utils"

	"github.com/kataras/iris/v12"
)

// maxStayDuration caps a stay at 3 nights; longer bookings are rejected at
// creation and on every update.
const maxStayDuration = 3 * 24 * time.Hour

type CreateBookingRequest struct {
	GuestCount   int       `json:"guestCount" validate:"required,min=1"`
	Room         string    `json:"room" validate:"required"`
	CheckInDate  time.Time `json:"checkInDate" validate:"required"`
	CheckOutDate time.Time `json:"checkOutDate" validate:"required"`
}

type UpdateBookingRequest struct {
	GuestCount   int       `json:"guestCount" validate:"omitempty,min=1"`
	Room         string    `json:"room"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
}

// validStay checks the check-in/check-out pair against the 3-night rule and
// writes the rejection itself, so callers just return on false.
func validStay(checkIn, checkOut time.Time, ctx iris.Context) bool {
	stay := checkOut.Sub(checkIn)
	if stay <= 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Check-out date must be after check-in date.", ctx)
		return false
	}
	if stay > maxStayDuration {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "User must book less than or equal to 3 nights.", ctx)
		return false
	}
	return true
}

func confirmationURL(bookingID uint, token string, ctx iris.Context) string {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://" + ctx.Host()
	}
	return fmt.Sprintf("%s/api/v1/bookings/confirm/%d/%s", baseURL, bookingID, token)
}

// CreateBooking persists a pending booking for the hotel in the URL and
// emails the guest a confirmation link. If the email cannot be delivered the
// booking is deleted again so no unreachable pending booking is left behind.
func CreateBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	hotelID := ctx.Params().GetUintDefault("id", 0)
	var hotel models.Hotel
	if err := storage.DB.First(&hotel, hotelID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No hotel with the id of %d.", hotelID), ctx)
		return
	}

	var request CreateBookingRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !validStay(request.CheckInDate, request.CheckOutDate, ctx) {
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	booking := models.Booking{
		GuestCount:        request.GuestCount,
		Room:              request.Room,
		CheckInDate:       request.CheckInDate,
		CheckOutDate:      request.CheckOutDate,
		UserID:            userID,
		HotelID:           hotel.ID,
		Status:            models.BookingStatusPending,
		ConfirmationToken: utils.GenerateConfirmationToken(),
	}

	if err := storage.DB.Create(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	url := confirmationURL(booking.ID, booking.ConfirmationToken, ctx)
	if err := services.Mail.SendBookingConfirmation(user.Email, url); err != nil {
		// The guest can never reach a pending booking whose link was lost,
		// so roll the creation back instead of stranding it.
		storage.DB.Unscoped().Delete(&booking)
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error",
			"Could not send the booking confirmation email. Please try again.", ctx)
		return
	}

	services.NotificationServiceInstance.NotifyBookingCreated(userID, hotel.Name)

	ctx.JSON(iris.Map{
		"success": true,
		"message": "A booking confirmation email has been sent. Please check your email and click the link to confirm.",
		"data":    booking,
	})
}

// ConfirmBooking is reached through the emailed link, so it takes no auth.
func ConfirmBooking(ctx iris.Context) {
	bookingID := ctx.Params().GetUintDefault("bookingId", 0)
	token := ctx.Params().Get("token")

	var booking models.Booking
	if err := storage.DB.First(&booking, bookingID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No booking with the id of %d.", bookingID), ctx)
		return
	}

	if booking.Status == models.BookingStatusConfirmed {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "This booking has already been confirmed.", ctx)
		return
	}

	if subtle.ConstantTimeCompare([]byte(booking.ConfirmationToken), []byte(token)) != 1 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid confirmation link.", ctx)
		return
	}

	booking.Status = models.BookingStatusConfirmed
	booking.ConfirmationToken = ""
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, booking.HotelID).Error; err == nil {
		services.NotificationServiceInstance.NotifyBookingConfirmed(booking.UserID, hotel.Name)
	}

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Your booking has been confirmed!",
	})
}

// ListBookings returns the requester's bookings, or every booking when the
// requester is an admin (optionally narrowed to one hotel).
func ListBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().GetStringDefault("role", "user")

	query := storage.DB.Preload("Hotel")
	if role != "admin" {
		query = query.Where("user_id = ?", userID)
	} else if hotelID := ctx.URLParamIntDefault("hotelId", 0); hotelID > 0 {
		query = query.Where("hotel_id = ?", hotelID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot find Booking.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"count":   len(bookings),
		"data":    bookings,
	})
}

func GetBookingByID(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().GetStringDefault("role", "user")
	bookingID := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	if err := storage.DB.Preload("Hotel").First(&booking, bookingID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No booking with the id of %d.", bookingID), ctx)
		return
	}

	if !utils.CanAccess(userID, booking.UserID, role) {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized",
			fmt.Sprintf("User %d is not authorized to view this booking.", userID), ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    booking,
	})
}

// UpdateBooking applies date, room and guest count changes. The owning user
// and hotel are fixed at creation and cannot be reassigned here.
func UpdateBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().GetStringDefault("role", "user")
	bookingID := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	if err := storage.DB.First(&booking, bookingID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No booking with the id of %d.", bookingID), ctx)
		return
	}

	if !utils.CanAccess(userID, booking.UserID, role) {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized",
			fmt.Sprintf("User %d is not authorized to update this booking.", userID), ctx)
		return
	}

	var request UpdateBookingRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn := booking.CheckInDate
	checkOut := booking.CheckOutDate
	if !request.CheckInDate.IsZero() {
		checkIn = request.CheckInDate
	}
	if !request.CheckOutDate.IsZero() {
		checkOut = request.CheckOutDate
	}

	if !validStay(checkIn, checkOut, ctx) {
		return
	}

	booking.CheckInDate = checkIn
	booking.CheckOutDate = checkOut
	if request.GuestCount > 0 {
		booking.GuestCount = request.GuestCount
	}
	if request.Room != "" {
		booking.Room = request.Room
	}

	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot update Booking.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    booking,
	})
}

func DeleteBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().GetStringDefault("role", "user")
	bookingID := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	if err := storage.DB.First(&booking, bookingID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No booking with the id of %d.", bookingID), ctx)
		return
	}

	if !utils.CanAccess(userID, booking.UserID, role) {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized",
			fmt.Sprintf("User %d is not authorized to delete this booking.", userID), ctx)
		return
	}

	if err := storage.DB.Unscoped().Delete(&booking).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot delete Booking.", ctx)
		return
	}

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, booking.HotelID).Error; err == nil {
		services.NotificationServiceInstance.NotifyBookingCancelled(booking.UserID, hotel.Name)
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    iris.Map{},
	})
}

// HasCompletedStay reports whether the user has a booking at the hotel whose
// check-out date is already in the past. Reviews call this before allowing a
// new review.
func HasCompletedStay(userID uint, hotelID uint) bool {
	var count int64
	storage.DB.Model(&models.Booking{}).
		Where("user_id = ? AND hotel_id = ? AND check_out_date < ?", userID, hotelID, time.Now()).
		Count(&count)
	return count > 0
}
