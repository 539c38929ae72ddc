package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/venividilaundry/veni-vidi-laundry/internal/config"
	"github.com/venividilaundry/veni-vidi-laundry/internal/models"
	"github.com/venividilaundry/veni-vidi-laundry/internal/postcode"
	"github.com/venividilaundry/veni-vidi-laundry/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db      *gorm.DB
	cfg     *config.Config
	matcher *postcode.Matcher
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, matcher *postcode.Matcher) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, matcher: matcher}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Postcode  string `json:"postcode"`
}

// Register creates a new customer account. Registration is refused outright
// for postcodes outside the service area; refused registrations never create
// a row.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" || req.Postcode == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	if area := h.matcher.Check(req.Postcode); !area.InServiceArea {
		return fiber.NewError(fiber.StatusBadRequest, area.Message)
	}

	var existing models.Account
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "email already registered")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	account := models.Account{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		Postcode:     req.Postcode,
		IsAdmin:      h.cfg.IsAdminEmail(req.Email),
	}

	if err := h.db.Create(&account).Error; err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, account.ID, account.Email, account.IsAdmin, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user": fiber.Map{
			"id":         account.ID,
			"email":      account.Email,
			"first_name": account.FirstName,
			"last_name":  account.LastName,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an existing account.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password required")
	}

	var account models.Account
	if err := h.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	if !utils.CheckPassword(account.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	// Allow-listed emails are promoted on login; this replaces the old
	// shared-secret setup endpoint.
	if !account.IsAdmin && h.cfg.IsAdminEmail(account.Email) {
		if err := h.db.Model(&account).Update("is_admin", true).Error; err != nil {
			return err
		}
		account.IsAdmin = true
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, account.ID, account.Email, account.IsAdmin, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user": fiber.Map{
			"id":         account.ID,
			"email":      account.Email,
			"first_name": account.FirstName,
			"last_name":  account.LastName,
			"is_admin":   account.IsAdmin,
		},
	})
}

type checkPostcodeRequest struct {
	Postcode string `json:"postcode"`
}

// CheckPostcode reports service-area eligibility for a raw postcode.
func (h *AuthHandler) CheckPostcode(c *fiber.Ctx) error {
	var req checkPostcodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Postcode == "" {
		return fiber.NewError(fiber.StatusBadRequest, "postcode required")
	}

	return c.JSON(h.matcher.Check(req.Postcode))
}
