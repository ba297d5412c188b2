package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTGenerateAndParse(t *testing.T) {
	m := NewJWTManager("secret-one", time.Hour)

	token, exp, err := m.Generate("user-42")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	subject, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", subject)
}

func TestJWTParseWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-one", time.Hour)
	token, _, err := m.Generate("user-42")
	require.NoError(t, err)

	other := NewJWTManager("secret-two", time.Hour)
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestJWTParseExpired(t *testing.T) {
	m := NewJWTManager("secret-one", -time.Minute)
	token, _, err := m.Generate("user-42")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWTParseGarbage(t *testing.T) {
	m := NewJWTManager("secret-one", time.Hour)
	_, err := m.Parse("not-a-token")
	assert.Error(t, err)
}
