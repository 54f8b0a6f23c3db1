package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"buddyremind/internal/apperr"
	"buddyremind/internal/config"
	"buddyremind/internal/logger"
	"buddyremind/internal/metrics"
	"buddyremind/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const resetTokenTTL = 10 * time.Minute

type AuthService struct {
	db    *gorm.DB
	stats *StatsService
	mail  Mailer
	smtp  config.SMTPConfig
}

func NewAuthService(db *gorm.DB, stats *StatsService, mail Mailer, smtp config.SMTPConfig) *AuthService {
	return &AuthService{db: db, stats: stats, mail: mail, smtp: smtp}
}

// Register creates a user, assigns the default buddy when one exists,
// eagerly creates the user's stats record and stores a hashed verification
// token. Verification does not gate access: the caller is logged in
// immediately and the verification mail is best-effort in development.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	var existing model.User
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("email already in use")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     "user",
	}

	var buddy model.Buddy
	if err := s.db.WithContext(ctx).Where("is_default = ?", true).First(&buddy).Error; err == nil {
		user.Preferences = datatypes.NewJSONType(model.Preferences{DefaultBuddyID: buddy.ID})
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if _, err := s.stats.GetOrCreate(ctx, user.ID); err != nil {
		return nil, err
	}

	raw, hashed, err := newOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("verification token: %w", err)
	}
	user.VerificationToken = hashed
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, fmt.Errorf("store verification token: %w", err)
	}

	if s.smtp.Host != "" {
		url := fmt.Sprintf("%s/api/auth/verify-email/%s", s.smtp.BaseURL, raw)
		body := "Please verify your email by clicking on the following link: " + url
		if err := s.mail.Send(user.Email, "Verify Your Email", body); err != nil {
			user.VerificationToken = ""
			s.db.WithContext(ctx).Save(&user)
			return nil, apperr.Dependency(err, "email could not be sent")
		}
	}

	metrics.UserRegistrations.Inc()
	logger.Info("user registered", "uid", user.ID, "email", user.Email)
	return &user, nil
}

// Login verifies credentials. Unknown email and wrong password return the
// same generic message so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperr.Authentication("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.Authentication("invalid credentials")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	metrics.UserLogins.Inc()
	return &user, nil
}

func (s *AuthService) Get(ctx context.Context, userID int) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// VerifyEmail consumes a clear verification token.
func (s *AuthService) VerifyEmail(ctx context.Context, rawToken string) error {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("verification_token = ?", hashOpaqueToken(rawToken)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Validation("invalid verification token")
	}
	if err != nil {
		return fmt.Errorf("query user: %w", err)
	}

	user.Verified = true
	user.VerificationToken = ""
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ForgotPassword stores a hashed reset token with an expiry and mails the
// clear token. A delivery failure clears both fields so the user can retry.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("there is no user with that email")
	}
	if err != nil {
		return fmt.Errorf("query user: %w", err)
	}

	raw, hashed, err := newOpaqueToken()
	if err != nil {
		return fmt.Errorf("reset token: %w", err)
	}
	expire := time.Now().Add(resetTokenTTL)
	user.ResetPasswordToken = hashed
	user.ResetPasswordExpire = &expire
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	url := fmt.Sprintf("%s/api/auth/reset-password/%s", s.smtp.BaseURL, raw)
	body := "You are receiving this email because you (or someone else) has requested the reset of a password. " +
		"Please follow this link to reset your password: " + url
	if err := s.mail.Send(user.Email, "Password reset token", body); err != nil {
		user.ResetPasswordToken = ""
		user.ResetPasswordExpire = nil
		s.db.WithContext(ctx).Save(&user)
		return apperr.Dependency(err, "email could not be sent")
	}
	return nil
}

// ResetPassword consumes a clear reset token and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, password string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expire > ?", hashOpaqueToken(rawToken), time.Now()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Validation("invalid token")
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) UpdateDetails(ctx context.Context, userID int, req model.UpdateDetailsRequest) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Email != "" && req.Email != user.Email {
		var other model.User
		if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&other).Error; err == nil {
			return nil, apperr.Conflict("email already in use")
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// UpdatePassword requires re-submission of the current password.
func (s *AuthService) UpdatePassword(ctx context.Context, userID int, current, next string) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return nil, apperr.Authentication("password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Opaque tokens are random, handed to the user in clear form and stored
// only as a sha256 hex digest.
func newOpaqueToken() (raw, hashed string, err error) {
	b := make([]byte, 20)
	if _, err = rand.Read(b); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(b)
	return raw, hashOpaqueToken(raw), nil
}

func hashOpaqueToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
