package domain

import (
	"testing"

	"github.com/mangrove-guardian/backend/internal/model"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_authDomain_Signup(t *testing.T) {
	ctx := testutil.MockContext()
	coinRepo := repository.NewCoinRepository()
	d := NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		coinRepo,
	)

	resp, err := d.Signup(ctx, &model.SignupRequest{
		Email:       "rini@example.com",
		Password:    "correct horse",
		DisplayName: "Rini",
		Country:     "Indonesia",
	})
	require.NoError(t, err)
	require.Equal(t, "Rini", resp.User.DisplayName)

	// Every new account starts with the welcome grant.
	coin, err := coinRepo.GetByUserID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(100), coin.Balance)
	require.Equal(t, uint64(0), resp.User.Points)

	// The email is now taken.
	_, err = d.Signup(ctx, &model.SignupRequest{
		Email:    "rini@example.com",
		Password: "another password",
	})
	require.Error(t, err)
	require.Equal(t, "This email is already registered", err.Error())
}

func Test_authDomain_Signup_GeneratesDisplayName(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		repository.NewCoinRepository(),
	)

	resp, err := d.Signup(ctx, &model.SignupRequest{
		Email:    "anon@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.User.DisplayName)
}

func Test_authDomain_Signup_RejectsWeakInput(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		repository.NewCoinRepository(),
	)

	_, err := d.Signup(ctx, &model.SignupRequest{Email: "", Password: "correct horse"})
	require.Error(t, err)

	_, err = d.Signup(ctx, &model.SignupRequest{Email: "a@example.com", Password: "short"})
	require.Error(t, err)
	require.Equal(t, "Password must be at least 8 characters", err.Error())
}

func Test_authDomain_Signin(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository()
	d := NewAuthDomain(userRepo, repository.NewProfileRepository(), repository.NewCoinRepository())

	_, err := d.Signup(ctx, &model.SignupRequest{
		Email:    "rini@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	resp, err := d.Signin(ctx, &model.SigninRequest{
		Email:    "rini@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	// A wrong password and an unknown email fail the same way.
	_, err = d.Signin(ctx, &model.SigninRequest{Email: "rini@example.com", Password: "wrong"})
	require.Error(t, err)
	require.Equal(t, "Invalid email or password", err.Error())

	_, err = d.Signin(ctx, &model.SigninRequest{Email: "ghost@example.com", Password: "whatever"})
	require.Error(t, err)
	require.Equal(t, "Invalid email or password", err.Error())

	// Banned accounts cannot sign in at all.
	err = userRepo.SetBanned(ctx, resp.User.ID, true, "spamming reports")
	require.NoError(t, err)

	_, err = d.Signin(ctx, &model.SigninRequest{
		Email:    "rini@example.com",
		Password: "correct horse",
	})
	require.Error(t, err)
	require.Equal(t, "This account has been banned", err.Error())
}
