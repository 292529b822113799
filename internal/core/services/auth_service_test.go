package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupKey(t *testing.T) {
	assert.Equal(t, "A-101", GroupKey("A", "101"))
	assert.Equal(t, "B-203", GroupKey("B", "203"))
}

func TestSignupStudent(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	student, err := svc.SignupStudent(context.Background(), &SignupInput{
		Email:      "alice@vitstudent.ac.in",
		Password:   "password123",
		Name:       "Alice",
		Block:      "A",
		RoomNumber: "101",
	})
	require.NoError(t, err)

	assert.Equal(t, "A-101", student.GroupNo)
	assert.Equal(t, "student", student.Role)
	assert.NotEqual(t, "password123", student.Password)
}

func TestSignupStudentRejectsForeignDomain(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.SignupStudent(context.Background(), &SignupInput{
		Email:      "alice@gmail.com",
		Password:   "password123",
		Name:       "Alice",
		Block:      "A",
		RoomNumber: "101",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEmailDomain)
}

func TestSignupStudentDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedStudent(t, db, "alice@vitstudent.ac.in", "Alice", "A", "101")

	_, err := svc.SignupStudent(context.Background(), &SignupInput{
		Email:      "alice@vitstudent.ac.in",
		Password:   "password123",
		Name:       "Alice Again",
		Block:      "B",
		RoomNumber: "202",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginStudent(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedStudent(t, db, "alice@vitstudent.ac.in", "Alice", "A", "101")

	result, err := svc.LoginStudent(context.Background(), "alice@vitstudent.ac.in", "password123")
	require.NoError(t, err)

	claims, err := jwt.ValidateToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "A-101", claims.GroupNo)
	assert.Equal(t, "Alice", result.Student.Name)
}

func TestLoginStudentBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedStudent(t, db, "alice@vitstudent.ac.in", "Alice", "A", "101")

	_, err := svc.LoginStudent(context.Background(), "alice@vitstudent.ac.in", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.LoginStudent(context.Background(), "nobody@vitstudent.ac.in", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginCleaner(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedCleaner(t, db, "EMP001", "Ramu", []string{"A", "B"}, true)

	result, err := svc.LoginCleaner(context.Background(), "EMP001", "password123")
	require.NoError(t, err)

	claims, err := jwt.ValidateToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "cleaner", claims.Role)
	assert.Equal(t, []string{"A", "B"}, claims.Blocks)
}

func TestLoginCleanerInactive(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedCleaner(t, db, "EMP001", "Ramu", []string{"A"}, false)

	_, err := svc.LoginCleaner(context.Background(), "EMP001", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedAdmin(t, db, "admin")

	result, err := svc.LoginAdmin(context.Background(), "admin", "password123")
	require.NoError(t, err)

	claims, err := jwt.ValidateToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.LoginAdmin(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignupOTPFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	code, err := svc.RequestSignupOTP(context.Background(), "alice@vitstudent.ac.in")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)

	input := &SignupInput{
		Email:      "alice@vitstudent.ac.in",
		Password:   "password123",
		Name:       "Alice",
		Block:      "A",
		RoomNumber: "101",
	}

	// wrong code is rejected
	_, err = svc.VerifySignupOTP(context.Background(), "000000", input)
	if code != "000000" {
		assert.ErrorIs(t, err, domain.ErrInvalidOTP)
	}

	student, err := svc.VerifySignupOTP(context.Background(), code, input)
	require.NoError(t, err)
	assert.Equal(t, "alice@vitstudent.ac.in", student.Email)

	// a consumed code cannot be replayed
	_, err = svc.VerifySignupOTP(context.Background(), code, &SignupInput{
		Email:      "alice@vitstudent.ac.in",
		Password:   "password123",
		Name:       "Alice",
		Block:      "A",
		RoomNumber: "101",
	})
	assert.Error(t, err)
}

func TestRequestSignupOTPGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedStudent(t, db, "alice@vitstudent.ac.in", "Alice", "A", "101")

	_, err := svc.RequestSignupOTP(context.Background(), "alice@gmail.com")
	assert.ErrorIs(t, err, domain.ErrInvalidEmailDomain)

	_, err = svc.RequestSignupOTP(context.Background(), "alice@vitstudent.ac.in")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}
