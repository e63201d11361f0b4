package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
	"github.com/jhoicas/wholesale-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL how long an emailed reset link stays valid.
const resetTokenTTL = time.Hour

// JWTConfig token settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration, login, token verification and password management.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   ports.Mailer
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, mailer ports.Mailer, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, jwtCfg: jwtCfg, now: time.Now}
}

// Register creates an account (role branch unless admin is requested) and returns a session token.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleBranch
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Firstname:    strings.TrimSpace(in.Firstname),
		Lastname:     strings.TrimSpace(in.Lastname),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.session(user)
}

// Login checks the credentials. Unknown email and wrong password are both ErrUnauthorized;
// an inactive account is ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if strings.EqualFold(user.Status, entity.StatusInactive) {
		return nil, domain.ErrForbidden
	}
	return uc.session(user)
}

// Verify validates a token and returns the identity it carries.
func (uc *AuthUseCase) Verify(token string) (*dto.VerifyResponse, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	info := dto.IdentityInfo{
		ID:        claims.UserID,
		Email:     claims.Email,
		Firstname: claims.Firstname,
		Lastname:  claims.Lastname,
		Role:      claims.Role,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return &dto.VerifyResponse{Message: "Token is valid", User: info}, nil
}

// ForgotPassword stores a one-hour reset token and emails the link <baseURL>/update-password/<token>.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email, baseURL string) error {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	expires := uc.now().Add(resetTokenTTL)
	user.ResetTokenHash = hashToken(token)
	user.ResetTokenExpiresAt = &expires
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}

	link := strings.TrimRight(baseURL, "/") + "/update-password/" + token
	return uc.mailer.Send(ctx, ports.Mail{
		To:       []string{user.Email},
		Subject:  "Password Reset Request",
		HTMLBody: resetMailBody(user.Firstname, link),
	})
}

// ResetPassword sets a new password for the owner of a valid reset token and consumes the token.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, token string, in dto.ResetPasswordRequest) error {
	if token == "" {
		return domain.ErrInvalidToken
	}
	user, err := uc.userRepo.GetByResetToken(ctx, hashToken(token), uc.now())
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidToken
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	user.UpdatedAt = uc.now()
	return uc.userRepo.Update(ctx, user)
}

// UpdateProfile changes name and email of the caller and issues a token with the new identity.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	email := normalizeEmail(in.Email)
	if email != user.Email {
		other, err := uc.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	user.Firstname = strings.TrimSpace(in.Firstname)
	user.Lastname = strings.TrimSpace(in.Lastname)
	user.Email = email
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	sess, err := uc.session(user)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{User: sess.User, Token: sess.Token}, nil
}

// UpdatePassword changes the caller's password after checking the current one.
func (uc *AuthUseCase) UpdatePassword(ctx context.Context, userID string, in dto.UpdatePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrInvalidInput)
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = uc.now()
	return uc.userRepo.Update(ctx, user)
}

// HashPassword bcrypt hash with the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (uc *AuthUseCase) session(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Role:      user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Status: true, Token: token, User: *toUserResponse(user)}, nil
}

func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashToken only the hash is stored; the raw token travels in the email.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func resetMailBody(firstname, link string) string {
	return fmt.Sprintf(`<p>Hello %s,</p>
<p>We received a request to reset your password. Use the link below within the next hour:</p>
<p><a href="%s">Reset your password</a></p>
<p>If you did not ask for a reset you can ignore this email.</p>`, html.EscapeString(firstname), html.EscapeString(link))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Firstname:     u.Firstname,
		Lastname:      u.Lastname,
		Email:         u.Email,
		Role:          u.Role,
		Address:       dto.AddressDTO{Street: u.Address.Street, City: u.Address.City, Postcode: u.Address.Postcode},
		PaymentMethod: u.PaymentMethod,
		Status:        u.Status,
		CreatedAt:     u.CreatedAt,
	}
}
