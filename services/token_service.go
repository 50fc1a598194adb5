package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenClaims is the payload of an admin bearer token
type TokenClaims struct {
	AdminID string `json:"adminId"`
	jwt.StandardClaims
}

// TokenService issues and verifies HS256 admin tokens
type TokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service signing with secret
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Generate signs a token for the admin id
func (ts *TokenService) Generate(adminID primitive.ObjectID) (string, error) {
	now := ts.now()
	claims := TokenClaims{
		AdminID: adminID.Hex(),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ts.expiry).Unix(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of token and returns the admin id
func (ts *TokenService) Parse(token string) (primitive.ObjectID, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return primitive.NilObjectID, apperrors.Unauthenticated("Token expired")
		}
		return primitive.NilObjectID, apperrors.Unauthenticated("Invalid token")
	}
	if !parsed.Valid {
		return primitive.NilObjectID, apperrors.Unauthenticated("Invalid token")
	}

	id, err := primitive.ObjectIDFromHex(claims.AdminID)
	if err != nil {
		return primitive.NilObjectID, apperrors.Unauthenticated("Invalid token")
	}
	return id, nil
}
