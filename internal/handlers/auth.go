package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/mail"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ayuhealth/internal/config"
	"github.com/example/ayuhealth/internal/models"
	"github.com/example/ayuhealth/internal/services"
	"github.com/example/ayuhealth/internal/utils"
)

// AuthHandler bundles dependencies for customer and admin authentication.
type AuthHandler struct {
	db      *gorm.DB
	cfg     *config.Config
	mailer  services.MailSender
	captcha *services.CaptchaService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, mailer services.MailSender, captcha *services.CaptchaService) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, mailer: mailer, captcha: captcha}
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	CaptchaToken    string `json:"captcha_token"`
}

// Signup creates a new unverified customer account and emails a verification
// link.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email address")
	}

	if req.Password != req.ConfirmPassword {
		return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
	}

	if err := h.captcha.Verify(req.CaptchaToken); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var existing models.Customer
	err := h.db.Where("email = ? OR name = ?", req.Email, req.Name).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusConflict, "name or email already registered, please login")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	customer := models.Customer{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		IsVerified:   false,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		return err
	}

	h.sendVerificationEmail(customer)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "account created, please check your email to verify your address",
	})
}

func (h *AuthHandler) sendVerificationEmail(customer models.Customer) {
	token, err := utils.GenerateEmailToken(h.cfg.JWTSecret, customer.Email, utils.PurposeVerifyEmail)
	if err != nil {
		log.Printf("[Auth] Failed to generate verification token for %s: %v", customer.Email, err)
		return
	}

	link := fmt.Sprintf("%s/verify_email/%s", h.cfg.BaseURL, token)
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Welcome to %s! Please confirm your email address within one hour:</p>
<p><a href="%s">%s</a></p>`,
		customer.Name, h.cfg.ShopName, link, link,
	)

	if err := h.mailer.SendHTML(customer.Email, fmt.Sprintf("Verify your %s account", h.cfg.ShopName), body); err != nil {
		log.Printf("[Auth] Failed to send verification email to %s: %v", customer.Email, err)
	}
}

// VerifyEmail redeems an emailed verification token. Redeeming an already
// verified account within the token's validity is a no-op success.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	email, err := utils.ParseEmailToken(h.cfg.JWTSecret, c.Params("token"), utils.PurposeVerifyEmail)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return fiber.NewError(fiber.StatusBadRequest, "verification link expired, please sign up again")
		}
		return fiber.NewError(fiber.StatusBadRequest, "invalid verification link")
	}

	result := h.db.Model(&models.Customer{}).Where("email = ?", email).Update("is_verified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "email verified, you can now log in",
	})
}

type loginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captcha_token"`
}

// Login authenticates a verified customer and issues a session token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	if err := h.captcha.Verify(req.CaptchaToken); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var customer models.Customer
	if err := h.db.Where("email = ?", req.Email).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
		}
		return err
	}

	if !customer.IsVerified {
		return fiber.NewError(fiber.StatusForbidden, "please verify your email before logging in")
	}

	if !utils.CheckPassword(customer.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := utils.GenerateSessionToken(h.cfg.JWTSecret, customer.ID, customer.Name, customer.Email, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"customer": fiber.Map{
			"id":    customer.ID,
			"name":  customer.Name,
			"email": customer.Email,
		},
		"token": token,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword emails a time-limited password reset link. The response is
// the same whether or not the account exists.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	var customer models.Customer
	err := h.db.Where("email = ?", req.Email).First(&customer).Error
	if err == nil {
		h.sendResetEmail(customer)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "if the account exists, a reset link has been emailed",
	})
}

func (h *AuthHandler) sendResetEmail(customer models.Customer) {
	token, err := utils.GenerateEmailToken(h.cfg.JWTSecret, customer.Email, utils.PurposePasswordReset)
	if err != nil {
		log.Printf("[Auth] Failed to generate reset token for %s: %v", customer.Email, err)
		return
	}

	link := fmt.Sprintf("%s/reset-password/%s", h.cfg.BaseURL, token)
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>We received a request to reset your %s password. The link below is valid for one hour:</p>
<p><a href="%s">%s</a></p>
<p>If you didn't request this, you can ignore this email.</p>`,
		customer.Name, h.cfg.ShopName, link, link,
	)

	if err := h.mailer.SendHTML(customer.Email, fmt.Sprintf("Reset your %s password", h.cfg.ShopName), body); err != nil {
		log.Printf("[Auth] Failed to send reset email to %s: %v", customer.Email, err)
	}
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ResetPassword redeems a reset token and updates the password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.NewPassword) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	email, err := utils.ParseEmailToken(h.cfg.JWTSecret, c.Params("token"), utils.PurposePasswordReset)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return fiber.NewError(fiber.StatusBadRequest, "reset link expired, please request a new one")
		}
		return fiber.NewError(fiber.StatusBadRequest, "invalid reset link")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	result := h.db.Model(&models.Customer{}).Where("email = ?", email).Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "password updated successfully",
	})
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin authenticates against the configured admin credentials and
// issues an admin session token.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Username != h.cfg.AdminUser || h.cfg.AdminPassHash == "" ||
		!utils.CheckPassword(h.cfg.AdminPassHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateAdminToken(h.cfg.JWTSecret, req.Username, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}
