package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims represents the JWT claims carried by every session token.
// Role-specific scope fields are populated only for the matching role:
// students carry block/room/group, cleaners carry their assigned blocks.
type Claims struct {
	UserID     uint     `json:"user_id"`
	Role       string   `json:"role"`
	Email      string   `json:"email,omitempty"`
	Username   string   `json:"username,omitempty"`
	EmployeeID string   `json:"employee_id,omitempty"`
	Block      string   `json:"block,omitempty"`
	RoomNumber string   `json:"room_number,omitempty"`
	GroupNo    string   `json:"group_no,omitempty"`
	Blocks     []string `json:"blocks,omitempty"`
	jwt.RegisteredClaims
}

// GenerateStudentToken generates a session token for a student
func GenerateStudentToken(userID uint, email, block, roomNumber, groupNo, secret string, expiryHours int) (string, error) {
	claims := Claims{
		UserID:           userID,
		Role:             "student",
		Email:            email,
		Block:            block,
		RoomNumber:       roomNumber,
		GroupNo:          groupNo,
		RegisteredClaims: registeredClaims(email, expiryHours),
	}
	return sign(claims, secret)
}

// GenerateCleanerToken generates a session token for a cleaner,
// embedding the assigned-blocks scope used by pending-request listing.
func GenerateCleanerToken(cleanerID uint, employeeID string, blocks []string, secret string, expiryHours int) (string, error) {
	claims := Claims{
		UserID:           cleanerID,
		Role:             "cleaner",
		EmployeeID:       employeeID,
		Blocks:           blocks,
		RegisteredClaims: registeredClaims(employeeID, expiryHours),
	}
	return sign(claims, secret)
}

// GenerateAdminToken generates a session token for an admin
func GenerateAdminToken(adminID uint, username, secret string, expiryHours int) (string, error) {
	claims := Claims{
		UserID:           adminID,
		Role:             "admin",
		Username:         username,
		RegisteredClaims: registeredClaims(username, expiryHours),
	}
	return sign(claims, secret)
}

// ValidateToken validates a session token and returns its claims
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

func registeredClaims(subject string, expiryHours int) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiryHours) * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
		Issuer:    "cleanvit",
		Subject:   subject,
	}
}

func sign(claims Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
