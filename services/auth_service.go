package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-pms/models"
	"hotel-pms/pricing"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// StaffClaims is the JWT payload issued to staff members.
type StaffClaims struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	DB     *gorm.DB
	Secret []byte
	TTL    time.Duration

	now func() time.Time
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: []byte(secret), TTL: ttl, now: time.Now}
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Login checks the password and returns a signed token. Rows still holding a
// plain-text password are upgraded to bcrypt on first successful login.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, pricing.NewValidationError("username", "username and password required")
	}

	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, pricing.Persistence("find admin", err)
	}

	stored := admin.Password
	switch {
	case stored == "":
		return "", nil, ErrInvalidCredentials
	case isBcryptHash(stored):
		if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
			return "", nil, ErrInvalidCredentials
		}
	case stored == password:
		if hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
			s.DB.WithContext(ctx).Model(&admin).Update("password", string(hash))
		}
	default:
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(&admin)
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	if err := s.DB.WithContext(ctx).Model(&admin).Update("last_login_at", now).Error; err != nil {
		log.Printf("⚠️ failed to record login for %s: %v", admin.Username, err)
	}
	admin.LastLoginAt = &now
	return token, &admin, nil
}

func (s *AuthService) IssueToken(admin *models.Admin) (string, error) {
	now := s.now()
	claims := StaffClaims{
		Username: admin.Username,
		FullName: admin.FullName,
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(admin.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the staff claims.
func (s *AuthService) ParseToken(raw string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
