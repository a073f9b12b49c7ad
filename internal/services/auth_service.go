package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidSession = errors.New("invalid or expired session")

type SessionClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// PasswordHasher is the bcrypt half of AuthService; verification codes are
// hashed with it too.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
}

type AuthService interface {
	PasswordHasher
	IssueSession(userID int) (token string, expiresAt time.Time, err error)
	ParseSession(token string) (*SessionClaims, error)
}

type authService struct {
	secret   []byte
	lifetime time.Duration
	cost     int
	now      func() time.Time
}

func NewAuthService(secret []byte, lifetime time.Duration, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{secret: secret, lifetime: lifetime, cost: bcryptCost, now: time.Now}
}

func (s *authService) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt generate: %w", err)
	}
	return string(b), nil
}

func (s *authService) CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *authService) IssueSession(userID int) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.lifetime)
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return token, exp, nil
}

func (s *authService) ParseSession(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// only HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
