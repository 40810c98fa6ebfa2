package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hotel-booking-server/models"
	"hotel-booking-server/services"
	"hotel-booking-server/storage"
	"hotel-booking-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// fakeMailer records outgoing mail instead of delivering it.
type fakeMailer struct {
	confirmationURLs []string
	otps             []string
	fail             bool
}

func (m *fakeMailer) SendBookingConfirmation(to string, confirmationURL string) error {
	if m.fail {
		return errors.New("mail provider unavailable")
	}
	m.confirmationURLs = append(m.confirmationURLs, confirmationURL)
	return nil
}

func (m *fakeMailer) SendVerifyOTP(to string, code string) error {
	if m.fail {
		return errors.New("mail provider unavailable")
	}
	m.otps = append(m.otps, code)
	return nil
}

// buildTestApp wires the full route table against a fresh in-memory database
// and a recording mailer.
func buildTestApp(t *testing.T) (*iris.Application, *fakeMailer) {
	t.Helper()

	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	os.Setenv("REFRESH_TOKEN_SECRET", "testrefreshsecret")

	storage.InitializeTestDB()
	if storage.Redis == nil {
		storage.InitializeRedis()
	}

	mailer := &fakeMailer{}
	services.Mail = mailer
	t.Cleanup(func() { services.Mail = services.NewResendMailer() })

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	auth := app.Party("/api/v1/auth")
	{
		auth.Post("/register", Register)
		auth.Post("/login", Login)
		auth.Get("/me", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, GetMe)
		auth.Post("/verify", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, VerifyOTP)
		auth.Get("/re-verify", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, ReVerify)
	}

	hotels := app.Party("/api/v1/hotels")
	{
		hotels.Get("/", ListHotels)
		hotels.Get("/{id:uint}", GetHotel)
		hotels.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, CreateHotel)
		hotels.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, UpdateHotel)
		hotels.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, DeleteHotel)

		hotels.Post("/{id:uint}/bookings", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, CreateBooking)
		hotels.Get("/{id:uint}/reviews", ListHotelReviews)
		hotels.Post("/{id:uint}/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, CreateReview)
	}

	bookings := app.Party("/api/v1/bookings")
	{
		bookings.Get("/confirm/{bookingId:uint}/{token}", ConfirmBooking)
		bookings.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, ListBookings)
		bookings.Get("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, GetBookingByID)
		bookings.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, UpdateBooking)
		bookings.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, DeleteBooking)
	}

	reviews := app.Party("/api/v1/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		reviews.Get("/", ListReviews)
		reviews.Get("/{id:uint}", GetReview)
		reviews.Put("/{id:uint}", UpdateReview)
		reviews.Delete("/{id:uint}", DeleteReview)
	}

	notifications := app.Party("/api/v1/notifications", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		notifications.Get("/", ListNotifications)
		notifications.Get("/{id:uint}", GetNotification)
		notifications.Post("/", utils.AdminOnlyMiddleware, CreateNotification)
		notifications.Put("/{id:uint}", UpdateNotification)
		notifications.Delete("/{id:uint}", utils.AdminOnlyMiddleware, DeleteNotification)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("failed to build test app: %v", err)
	}
	return app, mailer
}

// signTestToken returns a signed access token for the given user
func signTestToken(t *testing.T, id uint, role string) string {
	t.Helper()
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), time.Hour)
	token, err := signer.Sign(utils.AccessToken{ID: id, Role: role})
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return string(token)
}

var userSeq int

func seedUser(t *testing.T, role string) models.User {
	t.Helper()
	userSeq++
	user := models.User{
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", userSeq),
		Email:     fmt.Sprintf("user%d@example.com", userSeq),
		Password:  "not-a-real-hash",
		Role:      role,
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

var hotelSeq int

func seedHotel(t *testing.T) models.Hotel {
	t.Helper()
	hotelSeq++
	hotel := models.Hotel{
		Name:        fmt.Sprintf("Hotel %d", hotelSeq),
		Picture:     "https://example.com/hotel.jpg",
		Description: "A test hotel",
		About:       "About the test hotel",
		Address:     "1 Test Street",
		District:    "Pathumwan",
		Province:    "Bangkok",
		PostalCode:  "10330",
		Region:      "Central",
		Size:        "Small",
		Guests:      2,
		DailyRate:   100,
	}
	if err := storage.DB.Create(&hotel).Error; err != nil {
		t.Fatalf("failed to seed hotel: %v", err)
	}
	return hotel
}

func seedBooking(t *testing.T, userID, hotelID uint, checkIn, checkOut time.Time, status, token string) models.Booking {
	t.Helper()
	booking := models.Booking{
		GuestCount:        2,
		Room:              "Standard",
		CheckInDate:       checkIn,
		CheckOutDate:      checkOut,
		UserID:            userID,
		HotelID:           hotelID,
		Status:            status,
		ConfirmationToken: token,
	}
	if err := storage.DB.Create(&booking).Error; err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	return booking
}

func doJSON(app *iris.Application, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func mustDecode(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", resp.Body.String(), err)
	}
}

func countBookings(t *testing.T) int64 {
	t.Helper()
	var count int64
	storage.DB.Model(&models.Booking{}).Count(&count)
	return count
}
