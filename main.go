package main

import (
	"hotel-booking-server/routes"
	"hotel-booking-server/storage"
	"hotel-booking-server/utils"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	auth := app.Party("/api/v1/auth")
	{
		auth.Post("/register", routes.Register)
		auth.Post("/login", routes.Login)
		auth.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		auth.Get("/me", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetMe)
		auth.Post("/logout", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.Logout)
		auth.Post("/verify", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.VerifyOTP)
		auth.Get("/re-verify", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ReVerify)
	}

	hotels := app.Party("/api/v1/hotels")
	{
		hotels.Get("/", routes.ListHotels)
		hotels.Get("/{id:uint}", routes.GetHotel)
		hotels.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateHotel)
		hotels.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateHotel)
		hotels.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteHotel)

		hotels.Post("/{id:uint}/bookings", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateBooking)
		hotels.Get("/{id:uint}/reviews", routes.ListHotelReviews)
		hotels.Post("/{id:uint}/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateReview)
	}

	bookings := app.Party("/api/v1/bookings")
	{
		bookings.Get("/confirm/{bookingId:uint}/{token}", routes.ConfirmBooking)
		bookings.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ListBookings)
		bookings.Get("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetBookingByID)
		bookings.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateBooking)
		bookings.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteBooking)
	}

	reviews := app.Party("/api/v1/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		reviews.Get("/", routes.ListReviews)
		reviews.Get("/{id:uint}", routes.GetReview)
		reviews.Put("/{id:uint}", routes.UpdateReview)
		reviews.Delete("/{id:uint}", routes.DeleteReview)
	}

	notifications := app.Party("/api/v1/notifications", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		notifications.Get("/", routes.ListNotifications)
		notifications.Get("/{id:uint}", routes.GetNotification)
		notifications.Post("/", utils.AdminOnlyMiddleware, routes.CreateNotification)
		notifications.Put("/{id:uint}", routes.UpdateNotification)
		notifications.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.DeleteNotification)
	}

	app.Get("/", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"success": true, "data": iris.Map{"id": 1}})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Printf("Server running on port %s", port)
	app.Listen(":" + port)
}
