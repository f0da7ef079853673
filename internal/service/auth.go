package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/chefcourse/backend/internal/events"
	"github.com/pageza/chefcourse/backend/internal/models"
	"github.com/pageza/chefcourse/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordResetWindow is how long a requested password reset stays open.
const PasswordResetWindow = time.Hour

// AuthService is the credential store: registration, login, lookup and
// password reset.
type AuthService struct {
	db        *gorm.DB
	tokens    *TokenService
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

var _ IAuthService = (*AuthService)(nil)

// NewAuthService creates an AuthService. A nil publisher drops events and a
// nil logger falls back to slog.Default.
func NewAuthService(db *gorm.DB, tokens *TokenService, publisher events.Publisher, logger *slog.Logger) *AuthService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		db:        db,
		tokens:    tokens,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a user with role "user" and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, "", err
	}

	db := s.db.WithContext(ctx)

	// Both uniqueness constraints are checked so the caller sees every conflict at once.
	var conflicts []string
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		conflicts = append(conflicts, "Email already registered")
	}
	if err := db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		conflicts = append(conflicts, "Username already taken")
	}
	if len(conflicts) > 0 {
		return nil, "", conflictError(conflicts...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", conflictError("Username or email already registered")
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.PasswordVersion)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.publish(ctx, events.New(events.TypeUserRegistered, map[string]string{
		"userId":   user.ID.String(),
		"username": user.Username,
	}))
	return user, token, nil
}

// Authenticate checks credentials, records the login time and issues a token.
// Unknown email, inactive account and wrong password are indistinguishable.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := validateStruct(&types.LoginRequest{Email: email, Password: password}); err != nil {
		return nil, "", err
	}

	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, "", fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLoginAt = &now

	token, err := s.tokens.Issue(user.ID, user.PasswordVersion)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return &user, token, nil
}

// FindByID returns the user with the given id.
func (s *AuthService) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateStoreError(err, "User not found")
	}
	return &user, nil
}

// RequestPasswordReset opens a reset window for the account with this email
// and publishes a one-time token for delivery to the mailbox. Only the token's
// hash is stored. It succeeds whether or not the email is registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	req := &types.RequestResetRequest{Email: normalizeEmail(email)}
	if err := validateStruct(req); err != nil {
		return err
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	token, err := newResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := s.now().UTC().Add(PasswordResetWindow)
	err = s.db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"reset_password_token_hash": hashResetToken(token),
		"reset_password_expires_at": expires,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to open reset window: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset requested", slog.String("user_id", user.ID.String()))
	s.publish(ctx, events.New(events.TypePasswordResetRequested, map[string]string{
		"userId":    user.ID.String(),
		"email":     user.Email,
		"token":     token,
		"expiresAt": expires.Format(time.RFC3339),
	}))
	return nil
}

// ResetPassword sets a new password when token matches the live reset window
// for the email. The token is single use and tokens issued before the change
// stop being accepted.
func (s *AuthService) ResetPassword(ctx context.Context, req *types.ResetPasswordRequest) error {
	req.Email = normalizeEmail(req.Email)
	req.Token = strings.TrimSpace(req.Token)
	if err := validateStruct(req); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	now := s.now().UTC()

	var user models.User
	err := db.Where("email = ? AND reset_password_expires_at > ?", req.Email, now).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	presented := hashResetToken(req.Token)
	if user.ResetPasswordTokenHash == "" ||
		subtle.ConstantTimeCompare([]byte(presented), []byte(user.ResetPasswordTokenHash)) != 1 {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Conditional on the stored hash so two concurrent resets with the same
	// token cannot both succeed.
	result := db.Model(&models.User{}).
		Where("id = ? AND reset_password_token_hash = ?", user.ID, user.ResetPasswordTokenHash).
		Updates(map[string]interface{}{
			"password_hash":             string(hash),
			"reset_password_token_hash": "",
			"reset_password_expires_at": nil,
			"password_changed_at":       now,
			"password_version":          gorm.Expr("password_version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to reset password: %w", result.Error)
	}
	if result.RowsAffected != 1 {
		return ErrInvalidResetToken
	}
	s.logger.InfoContext(ctx, "password reset", slog.String("user_id", user.ID.String()))
	return nil
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *AuthService) publish(ctx context.Context, ev events.Event) {
	publishEvent(ctx, s.publisher, s.logger, ev)
}

func publishEvent(ctx context.Context, p events.Publisher, logger *slog.Logger, ev events.Event) {
	if err := p.Publish(ctx, ev); err != nil {
		logger.WarnContext(ctx, "failed to publish event",
			slog.String("type", ev.Type),
			slog.String("error", err.Error()))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
