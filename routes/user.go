package routes

import (
	"log"
	"strings"

	"hotel-booking-server/models"
	"hotel-booking-server/services"
	"hotel-booking-server/storage"
	"hotel-booking-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
)

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists == true {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	otp := utils.GenerateOTP()

	newUser = models.User{
		FirstName:        userInput.FirstName,
		LastName:         userInput.LastName,
		Email:            strings.ToLower(userInput.Email),
		Password:         hashedPassword,
		Tel:              userInput.Tel,
		VerificationCode: otp,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Signup verification is advisory; a lost OTP email is re-sendable via
	// re-verify, so registration does not roll back on mail failure.
	if mailErr := services.Mail.SendVerifyOTP(newUser.Email, otp); mailErr != nil {
		log.Printf("Failed to send verification email to %s: %v", newUser.Email, mailErr)
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid email or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists == false {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

// GetMe returns the authenticated user's account.
func GetMe(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    &user,
	})
}

// Logout revokes the supplied refresh token so it can no longer mint access
// tokens. The access token itself simply expires.
func Logout(ctx iris.Context) {
	var input utils.RefreshTokenInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	utils.RevokeRefreshToken(input.RefreshToken)

	ctx.JSON(iris.Map{
		"success": true,
		"data":    iris.Map{},
	})
}

// VerifyOTP checks the signup verification code emailed at registration.
func VerifyOTP(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if user.IsVerified != nil && *user.IsVerified {
		utils.CreateError(iris.StatusConflict, "Conflict", "This account is already verified.", ctx)
		return
	}

	var input VerifyOTPInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.VerificationCode != user.VerificationCode {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Your OTP code is wrong or invalid.", ctx)
		return
	}

	verified := true
	user.IsVerified = &verified
	user.VerificationCode = ""
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Verify Successful!",
	})
}

// ReVerify issues a fresh OTP and emails it again.
func ReVerify(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if user.IsVerified != nil && *user.IsVerified {
		utils.CreateError(iris.StatusConflict, "Conflict", "This account is already verified.", ctx)
		return
	}

	otp := utils.GenerateOTP()
	user.VerificationCode = otp
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if mailErr := services.Mail.SendVerifyOTP(user.Email, otp); mailErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "Internal Server Error",
			"Could not send the verification email. Please try again.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Re-sending OTP Successful!",
	})
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	exists = userExistsQuery.RowsAffected > 0
	return exists, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success":      true,
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"role":         user.Role,
		"isVerified":   user.IsVerified,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

type RegisterUserInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	Email     string `json:"email" validate:"required,max=256,email"`
	Password  string `json:"password" validate:"required,min=8,max=256"`
	Tel       string `json:"tel"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPInput struct {
	VerificationCode string `json:"verificationCode" validate:"required,len=6"`
}
