package authentication

import (
	"errors"
	"time"

	"questboard/src/core/config"
	"questboard/src/core/helpers"
	"questboard/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 7 * 24 * time.Hour

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// issueJwtToken generates a JWT token for authenticated users.
func issueJwtToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secretKey := config.Config("JWT_SECRET")
	return token.SignedString([]byte(secretKey))
}

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignUp handles user registration.
func (h *Handler) SignUp(c *fiber.Ctx) error {
	body := new(signupRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid signup payload", err)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to hash password", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Username: body.Username,
		Email:    body.Email,
		Password: string(hashedPwd),
	}
	if result := h.DB.Create(&user); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return helpers.HandleError(c, fiber.StatusConflict, "Username or email already taken", result.Error)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to create user account", result.Error)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"id":       user.ID,
		"username": user.Username,
	})
}

type loginRequest struct {
	EmailOrUsername string `json:"emailorusername" validate:"required"`
	Password        string `json:"password" validate:"required"`
	Type            string `json:"type" validate:"required,oneof=email username"`
}

// Login authenticates by email or username and returns a bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	body := new(loginRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid login payload", err)
	}

	column := "username"
	if body.Type == "email" {
		column = "email"
	}

	user := new(models.User)
	if err := h.DB.Where(column+" = ?", body.EmailOrUsername).First(user).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid login credentials", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid login credentials", err)
	}

	token, err := issueJwtToken(user.Username)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to generate token", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Login successful", fiber.Map{"token": token})
}
