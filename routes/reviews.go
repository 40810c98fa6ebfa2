package routes

import (
	"errors"
	"fmt"

	"hotel-booking-server/models"
	"hotel-booking-server/storage"
	"hotel-booking-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// ListHotelReviews returns every review for one hotel. Public.
func ListHotelReviews(ctx iris.Context) {
	hotelID := ctx.Params().GetUintDefault("id", 0)

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, hotelID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No hotel with the id of %d.", hotelID), ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("User").
		Where("hotel_id = ?", hotel.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot find Reviews.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"count":   len(reviews),
		"data":    reviews,
	})
}

// ListReviews returns the requester's reviews, or all reviews for admins.
func ListReviews(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().GetStringDefault("role", "user")

	query := storage.DB.Preload("Hotel").Preload("User")
	if role != "admin" {
		query = query.Where("user_id = ?", userID)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot find Reviews.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"count":   len(reviews),
		"data":    reviews,
	})
}

func GetReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().GetStringDefault("role", "user")
	reviewID := ctx.Params().GetUintDefault("id", 0)

	var review models.Review
	if err := storage.DB.Preload("Hotel").Preload("User").First(&review, reviewID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No review with the id of %d.", reviewID), ctx)
		return
	}

	if !utils.CanAccess(userID, review.UserID, role) {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized",
			fmt.Sprintf("User %d is not authorized to view this review.", userID), ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    review,
	})
}

// CreateReview accepts a review only from a guest with a completed stay at
// the hotel who has not reviewed it before.
func CreateReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	hotelID := ctx.Params().GetUintDefault("id", 0)

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, hotelID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No hotel with the id of %d.", hotelID), ctx)
		return
	}

	var request CreateReviewRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !HasCompletedStay(userID, hotel.ID) {
		utils.CreateError(iris.StatusForbidden, "Forbidden",
			"You must have completed a stay at this hotel before leaving a review.", ctx)
		return
	}

	var existing models.Review
	if err := storage.DB.Where("hotel_id = ? AND user_id = ?", hotel.ID, userID).First(&existing).Error; err == nil {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You have already reviewed this hotel.", ctx)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	review := models.Review{
		UserID:  userID,
		HotelID: hotel.ID,
		Comment: request.Comment,
		Rating:  request.Rating,
	}

	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot create Review.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    review,
	})
}

func UpdateReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().GetStringDefault("role", "user")
	reviewID := ctx.Params().GetUintDefault("id", 0)

	var review models.Review
	if err := storage.DB.First(&review, reviewID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No review with the id of %d.", reviewID), ctx)
		return
	}

	if !utils.CanAccess(userID, review.UserID, role) {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized",
			fmt.Sprintf("User %d is not authorized to update this review.", userID), ctx)
		return
	}

	var request UpdateReviewRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if request.Rating > 0 {
		review.Rating = request.Rating
	}
	if request.Comment != "" {
		review.Comment = request.Comment
	}

	if err := storage.DB.Save(&review).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot update Review.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    review,
	})
}

func DeleteReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().GetStringDefault("role", "user")
	reviewID := ctx.Params().GetUintDefault("id", 0)

	var review models.Review
	if err := storage.DB.First(&review, reviewID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No review with the id of %d.", reviewID), ctx)
		return
	}

	if !utils.CanAccess(userID, review.UserID, role) {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized",
			fmt.Sprintf("User %d is not authorized to delete this review.", userID), ctx)
		return
	}

	if err := storage.DB.Unscoped().Delete(&review).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot delete Review.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    iris.Map{},
	})
}
