package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
	"github.com/Ananth-NQI/govjobs-backend/internal/utils"
)

type AuthService struct {
	store    storage.Store
	otp      *OTPService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAuthService(store storage.Store, otp *OTPService, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:    store,
		otp:      otp,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// AuthResult is returned by Register and Login once a code has been issued.
type AuthResult struct {
	UserID    string
	Delivered bool
}

// Register creates an unverified user and sends them a code. The phone is checked as
// sent; padding around it is rejected rather than trimmed.
func (s *AuthService) Register(ctx context.Context, req models.RegistrationRequest) (*AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.FatherName = strings.TrimSpace(req.FatherName)
	req.MotherName = strings.TrimSpace(req.MotherName)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if !utils.IsValidPhone(req.Phone) {
		return nil, apperr.ErrInvalidPhoneFormat
	}

	_, err := s.store.GetUserByPhone(ctx, req.Phone)
	switch {
	case err == nil:
		return nil, apperr.ErrPhoneAlreadyRegistered
	case !errors.Is(err, storage.ErrNotFound):
		return nil, apperr.Persistence(err, "Failed to create user")
	}

	user := &models.User{
		Name:       req.Name,
		FatherName: req.FatherName,
		MotherName: req.MotherName,
		Phone:      req.Phone,
		Email:      req.Email,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, apperr.ErrPhoneAlreadyRegistered
		}
		return nil, apperr.Persistence(err, "Failed to create user")
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))

	issued, err := s.otp.Issue(ctx, user.Phone)
	if err != nil {
		return nil, err
	}
	return &AuthResult{UserID: user.ID, Delivered: issued.Delivered}, nil
}

// Login sends a fresh code to an already registered phone.
func (s *AuthService) Login(ctx context.Context, phone string) (*AuthResult, error) {
	if phone == "" {
		return nil, apperr.Detail(apperr.ErrMissingField, "phone")
	}
	if !utils.IsValidPhone(phone) {
		return nil, apperr.ErrInvalidPhoneFormat
	}

	user, err := s.store.GetUserByPhone(ctx, phone)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrPhoneNotRegistered
	}
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to look up user")
	}

	issued, err := s.otp.Issue(ctx, phone)
	if err != nil {
		return nil, err
	}
	return &AuthResult{UserID: user.ID, Delivered: issued.Delivered}, nil
}

// Verify consumes the code and marks the user verified.
func (s *AuthService) Verify(ctx context.Context, phone, code string) (*models.User, error) {
	if phone == "" || code == "" {
		return nil, apperr.Detail(apperr.ErrMissingField, "phone and otp are required")
	}

	if _, err := s.otp.Verify(ctx, phone, code); err != nil {
		return nil, err
	}

	user, err := s.store.MarkUserVerified(ctx, phone)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Error("otp consumed for unknown user", zap.String("phone", phone))
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to verify user")
	}
	return user, nil
}

// CurrentUser loads the user behind a session.
func (s *AuthService) CurrentUser(ctx context.Context, sess *SessionContext) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, sess.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to load user")
	}
	return user, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("Invalid request", err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	if verrs[0].Tag() == "required" {
		return apperr.Detail(apperr.ErrMissingField, "%s", strings.Join(fields, ", "))
	}
	return apperr.Validation("Invalid request", strings.Join(fields, ", "))
}
