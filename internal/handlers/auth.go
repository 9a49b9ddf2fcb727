package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/middleware"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/services"
	"github.com/Ananth-NQI/govjobs-backend/internal/utils"
)

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler handles registration, login and OTP verification
type AuthHandler struct {
	auth     *services.AuthService
	sessions *services.SessionManager
	mailbox  services.Mailbox
	cookie   CookieConfig
	demoMode bool
}

// NewAuthHandler creates a new auth handler. mailbox is only consulted in demo mode.
func NewAuthHandler(auth *services.AuthService, sessions *services.SessionManager, mailbox services.Mailbox, cookie CookieConfig, demoMode bool) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		mailbox:  mailbox,
		cookie:   cookie,
		demoMode: demoMode,
	}
}

// Register creates an unverified user and sends an OTP
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	res, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":   "User registered successfully. OTP sent to your phone.",
		"userId":    res.UserID,
		"delivered": res.Delivered,
		"demo_mode": h.demoMode,
	})
}

// Login sends a fresh OTP to a registered phone
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	res, err := h.auth.Login(c.UserContext(), req.Phone)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":   "OTP sent to your phone",
		"userId":    res.UserID,
		"delivered": res.Delivered,
		"demo_mode": h.demoMode,
	})
}

// Verify checks the OTP and starts a session
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req struct {
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	user, err := h.auth.Verify(c.UserContext(), req.Phone, req.OTP)
	if err != nil {
		return err
	}

	token, expires, err := h.sessions.Issue(user)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"message": "Verification successful",
		"user": fiber.Map{
			"id":          user.ID,
			"name":        user.Name,
			"phone":       user.Phone,
			"is_verified": user.IsVerified,
		},
	})
}

// Session returns the current session and its user
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return apperr.ErrNotAuthenticated
	}
	user, err := h.auth.CurrentUser(c.UserContext(), sess)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"session": sess,
		"user":    user,
	})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// DemoOTP shows the last code sent to a phone. Only available in demo mode.
func (h *AuthHandler) DemoOTP(c *fiber.Ctx) error {
	if !h.demoMode || h.mailbox == nil {
		return apperr.ErrDemoDisabled
	}
	phone := strings.TrimSpace(c.Query("phone"))
	if !utils.IsValidPhone(phone) {
		return apperr.ErrInvalidPhoneFormat
	}

	code, err := h.mailbox.Peek(c.UserContext(), phone)
	if errors.Is(err, services.ErrMailboxEmpty) {
		return apperr.New(apperr.KindNotFound, "No OTP found for this phone")
	}
	if err != nil {
		return apperr.Persistence(err, "Failed to read demo OTP")
	}
	return c.JSON(fiber.Map{"phone": phone, "otp": code})
}
