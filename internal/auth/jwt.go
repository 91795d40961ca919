package auth

import (
	"fmt"
	"time"

	"github.com/JorgeSaicoski/microservice-commons/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSecret []byte

const tokenTTL = 2 * time.Hour

// InitJWTSecret loads the signing secret from the environment. Must run
// before any token is issued or verified.
func InitJWTSecret() {
	jwtSecret = []byte(utils.GetEnv("JWT_SECRET", "dev-secret-change-me"))
}

// EmployeeClaims is the token payload for mobile-app sessions.
type EmployeeClaims struct {
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateEmployeeToken issues a signed token for the given employee,
// valid for two hours.
func GenerateEmployeeToken(employeeID, email, role string) (string, error) {
	now := time.Now()
	claims := EmployeeClaims{
		EmployeeID: employeeID,
		Email:      email,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   employeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyEmployeeToken parses and validates a token, returning its claims.
func VerifyEmployeeToken(tokenString string) (*EmployeeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &EmployeeClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*EmployeeClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
