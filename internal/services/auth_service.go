package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"catalog/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication and token issuance. Issued tokens are
// enriched with identity claims looked up from the user store.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
	}
}

// Login authenticates a user by email and password and returns a signed JWT
// carrying the enrichment claims.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Email,
		"jti": uuid.New().String(),
		"exp": now.Add(s.tokenDuration).Unix(),
		"iat": now.Unix(),
	}

	extra, err := s.EnrichClaims(user.Email)
	if err != nil {
		return "", err
	}
	for k, v := range extra {
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// EnrichClaims returns the identity claims to merge into a token issued for
// the given principal email. A principal with no matching user means the
// auth provider and the user store disagree; that error is propagated, never
// swallowed.
func (s *AuthService) EnrichClaims(email string) (map[string]interface{}, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("User not found for authenticated principal: %s", email)
			return nil, fmt.Errorf("no user found for principal %s: %w", email, err)
		}
		return nil, err
	}

	return map[string]interface{}{
		"userFirstName": user.FirstName,
		"userLastName":  user.LastName,
		"userId":        user.ID,
	}, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
