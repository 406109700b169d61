package authenticator_test

import (
	"testing"
	"time"

	"github.com/mangrove-guardian/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine[string]("secret", time.Minute)
	token, err := engine.Generate("user1", "abc")
	require.Nil(t, err)

	msg, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "abc", msg)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine[string]("secret", -time.Minute)
	token, err := engine.Generate("user1", "abc")
	require.Nil(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	engine := authenticator.NewTokenEngine[string]("secret", time.Minute)
	token, err := engine.Generate("user1", "abc")
	require.Nil(t, err)

	other := authenticator.NewTokenEngine[string]("another secret", time.Minute)
	_, err = other.Verify(token)
	require.Error(t, err)
}
