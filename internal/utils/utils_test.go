package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, exp, err := GenerateJWT("abc", "admin@example.com", "admin", "secret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateJWT_Failures(t *testing.T) {
	token, _, err := GenerateJWT("abc", "a@b.c", "admin", "secret", time.Hour)
	require.NoError(t, err)
	_, err = ValidateJWT(token, "other-secret")
	assert.Error(t, err)

	expired, _, err := GenerateJWT("abc", "a@b.c", "admin", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateJWT(expired, "secret")
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))

	_, _, err = GenerateJWT("abc", "a@b.c", "admin", "", time.Hour)
	assert.Error(t, err)
}

func TestParseNumberList(t *testing.T) {
	nums, err := ParseNumberList("1, 2,3 45")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 45}, nums)

	_, err = ParseNumberList("1,a")
	assert.Error(t, err)
}

func TestNormalizeMainNumbers(t *testing.T) {
	nums, err := NormalizeMainNumbers([]int{45, 3, 2, 1, 10, 9})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 9, 10, 45}, nums)

	_, err = NormalizeMainNumbers([]int{1, 1, 2, 3, 4, 5})
	assert.Error(t, err)

	_, err = NormalizeMainNumbers([]int{0, 1, 2, 3, 4, 5})
	assert.Error(t, err)
}
