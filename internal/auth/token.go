package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// Issuer menandatangani dan memverifikasi bearer token HS256.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(workerID int64) (string, error) {
	claims := jwt.MapClaims{
		"worker_id": workerID,
		"exp":       i.now().Add(i.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse mengembalikan worker id dari token yang valid dan belum expired.
func (i *Issuer) Parse(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("%w: claims", ErrInvalidToken)
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < i.now().Unix() {
		return 0, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	workerID, ok := claims["worker_id"].(float64)
	if !ok || workerID <= 0 {
		return 0, fmt.Errorf("%w: worker_id", ErrInvalidToken)
	}
	return int64(workerID), nil
}
