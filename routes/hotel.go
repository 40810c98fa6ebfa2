package routes

import (
	"fmt"
	"strings"

	"hotel-booking-server/models"
	"hotel-booking-server/storage"
	"hotel-booking-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type HotelInput struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Picture     string  `json:"picture" validate:"required"`
	Description string  `json:"description" validate:"required"`
	About       string  `json:"about" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	District    string  `json:"district" validate:"required"`
	Province    string  `json:"province" validate:"required"`
	PostalCode  string  `json:"postalCode" validate:"required,max=5"`
	Tel         string  `json:"tel"`
	Region      string  `json:"region" validate:"required"`
	Size        string  `json:"size"`
	Guests      int     `json:"guests" validate:"omitempty,min=2,max=4"`
	DailyRate   float64 `json:"dailyRate" validate:"required,min=0"`
}

// selectableColumns maps the JSON field names clients may pass in ?select=
// to their database columns.
var selectableColumns = map[string]string{
	"name":        "name",
	"picture":     "picture",
	"description": "description",
	"about":       "about",
	"address":     "address",
	"district":    "district",
	"province":    "province",
	"postalCode":  "postal_code",
	"tel":         "tel",
	"region":      "region",
	"size":        "size",
	"guests":      "guests",
	"dailyRate":   "daily_rate",
}

var equalityFilters = []string{"province", "region", "district", "size"}

// ListHotels is the public catalog endpoint: equality filters, field
// selection, sorting and pagination, the way the catalog has always behaved.
func ListHotels(ctx iris.Context) {
	query := storage.DB.Model(&models.Hotel{})

	for _, field := range equalityFilters {
		if value := ctx.URLParamDefault(field, ""); value != "" {
			query = query.Where(field+" = ?", value)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot find Hotels.", ctx)
		return
	}

	if selectParam := ctx.URLParamDefault("select", ""); selectParam != "" {
		columns := []string{"id"}
		for _, field := range strings.Split(selectParam, ",") {
			if column, ok := selectableColumns[strings.TrimSpace(field)]; ok && !slices.Contains(columns, column) {
				columns = append(columns, column)
			}
		}
		query = query.Select(columns)
	}

	switch ctx.URLParamDefault("sort", "") {
	case "name":
		query = query.Order("name ASC")
	case "lowest-price":
		query = query.Order("daily_rate ASC")
	case "highest-price":
		query = query.Order("daily_rate DESC")
	default:
		query = query.Order("created_at DESC")
	}

	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	limit := ctx.URLParamIntDefault("limit", 25)
	if limit < 1 || limit > 100 {
		limit = 25
	}
	startIndex := (page - 1) * limit

	var hotels []models.Hotel
	if err := query.Offset(startIndex).Limit(limit).Find(&hotels).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot find Hotels.", ctx)
		return
	}

	pagination := iris.Map{}
	if int64(startIndex+limit) < total {
		pagination["next"] = iris.Map{"page": page + 1, "limit": limit}
	}
	if startIndex > 0 {
		pagination["prev"] = iris.Map{"page": page - 1, "limit": limit}
	}

	ctx.JSON(iris.Map{
		"success":    true,
		"count":      len(hotels),
		"pagination": pagination,
		"data":       hotels,
	})
}

func GetHotel(ctx iris.Context) {
	hotelID := ctx.Params().GetUintDefault("id", 0)

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, hotelID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No hotel with the id of %d.", hotelID), ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    hotel,
	})
}

func CreateHotel(ctx iris.Context) {
	var input HotelInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	hotel := hotelFromInput(input)
	if err := storage.DB.Create(&hotel).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot create Hotel.", ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"data":    hotel,
	})
}

func UpdateHotel(ctx iris.Context) {
	hotelID := ctx.Params().GetUintDefault("id", 0)

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, hotelID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No hotel with the id of %d.", hotelID), ctx)
		return
	}

	var input HotelInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updated := hotelFromInput(input)
	updated.ID = hotel.ID
	updated.CreatedAt = hotel.CreatedAt
	if err := storage.DB.Save(&updated).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot update Hotel.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    updated,
	})
}

// DeleteHotel removes a hotel along with its bookings, matching the cascade
// the catalog has always performed. Reviews keep their hotel reference.
func DeleteHotel(ctx iris.Context) {
	hotelID := ctx.Params().GetUintDefault("id", 0)

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, hotelID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			fmt.Sprintf("No hotel with the id of %d.", hotelID), ctx)
		return
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("hotel_id = ?", hotel.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&hotel).Error
	})
	if err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error", "Cannot delete Hotel.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    iris.Map{},
	})
}

func hotelFromInput(input HotelInput) models.Hotel {
	size := input.Size
	if size == "" {
		size = "Small"
	}
	guests := input.Guests
	if guests == 0 {
		guests = 2
	}

	return models.Hotel{
		Name:        input.Name,
		Picture:     input.Picture,
		Description: input.Description,
		About:       input.About,
		Address:     input.Address,
		District:    input.District,
		Province:    input.Province,
		PostalCode:  input.PostalCode,
		Tel:         input.Tel,
		Region:      input.Region,
		Size:        size,
		Guests:      guests,
		DailyRate:   input.DailyRate,
	}
}
