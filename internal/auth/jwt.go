package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the access token payload. Subject holds the user ID and ID a
// unique token identifier used for revocation on logout.
type Claims struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// Session rebuilds the actor carried by the token.
func (c *Claims) Session() Session {
	return Session{
		UserID:     c.Subject,
		Name:       c.Name,
		Email:      c.Email,
		EmployeeID: c.EmployeeID,
		Role:       c.Role,
	}
}

func GenerateToken(secret string, s Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:       s.Name,
		Email:      s.Email,
		EmployeeID: s.EmployeeID,
		Role:       s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   s.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("invalid token: missing subject or id")
	}
	return claims, nil
}
