package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipebox/internal/apperr"
	"recipebox/internal/logging"
	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles password hashing, credential checks and bearer tokens.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService. Tokens it issues expire after tokenDuration.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
	}
}

// HashPassword returns a salted bcrypt hash of plaintext.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plaintext matches hash. A malformed hash is
// simply a mismatch.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Register validates the signup payload, checks username and email are free,
// hashes the password and saves the user.
func (s *AuthService) Register(ctx context.Context, in validation.Signup) (*models.User, error) {
	if err := validation.ValidateSignup(in).Err(); err != nil {
		return nil, err
	}

	if taken, err := s.exists(ctx, s.userRepo.GetByUsername, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("Username already taken")
	}
	if taken, err := s.exists(ctx, s.userRepo.GetByEmail, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("Email already taken")
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("Failed to register user", err)
	}
	user := &models.User{Username: in.Username, Email: in.Email, PasswordHash: hashed}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logging.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *AuthService) exists(ctx context.Context, get func(context.Context, string) (*models.User, error), key string) (bool, error) {
	_, err := get(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperr.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Login returns the user matching username and password. Unknown users and
// wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthenticated("Invalid credentials")
		}
		return nil, err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, apperr.Unauthenticated("Invalid credentials")
	}
	return user, nil
}

// CurrentUser resolves the user bound to a session or token. A binding to a
// deleted user counts as no binding.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthenticated("Not logged in")
		}
		return nil, err
	}
	return user, nil
}

// IssueToken signs an HS256 bearer token for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"jti":      uuid.NewString(),
		"exp":      now.Add(s.tokenDuration).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperr.Internal("Failed to generate token", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a bearer token, returning the user id it carries.
func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		logging.Debug().Err(err).Msg("token validation failed")
		return 0, apperr.Unauthenticated("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, apperr.Unauthenticated("Invalid token")
	}
	// JSON numbers decode as float64.
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, apperr.Unauthenticated("Invalid token")
	}
	return uint(id), nil
}
