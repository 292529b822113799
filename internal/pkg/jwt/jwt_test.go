package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestStudentTokenRoundTrip(t *testing.T) {
	token, err := GenerateStudentToken(7, "alice@vitstudent.ac.in", "A", "101", "A-101", testSecret, 1)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "alice@vitstudent.ac.in", claims.Email)
	assert.Equal(t, "A", claims.Block)
	assert.Equal(t, "101", claims.RoomNumber)
	assert.Equal(t, "A-101", claims.GroupNo)
	assert.Equal(t, "cleanvit", claims.Issuer)
}

func TestCleanerTokenCarriesBlocks(t *testing.T) {
	token, err := GenerateCleanerToken(3, "EMP001", []string{"A", "B"}, testSecret, 1)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "cleaner", claims.Role)
	assert.Equal(t, "EMP001", claims.EmployeeID)
	assert.Equal(t, []string{"A", "B"}, claims.Blocks)
}

func TestAdminToken(t *testing.T) {
	token, err := GenerateAdminToken(1, "admin", testSecret, 1)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin", claims.Username)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken(1, "admin", testSecret, 1)
	require.NoError(t, err)

	_, err = ValidateToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateAdminToken(1, "admin", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
