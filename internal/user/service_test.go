package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/splitledger/internal/auth"
	"github.com/fkhayef/splitledger/internal/database/databasetest"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/internal/user"
)

func newService(t *testing.T) (*user.Service, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return user.NewService(user.NewRepository(databasetest.Open(t)), tokens), tokens
}

func TestService_Register(t *testing.T) {
	type testCase struct {
		name    string
		req     user.RegisterRequest
		wantErr error
	}

	tests := []testCase{
		{name: "Success", req: user.RegisterRequest{Name: "Ana", Email: "Ana@Example.com ", Password: "hunter22"}},
		{name: "MissingName", req: user.RegisterRequest{Name: "  ", Email: "ana@example.com", Password: "hunter22"}, wantErr: user.ErrNameRequired},
		{name: "BadEmail", req: user.RegisterRequest{Name: "Ana", Email: "ana.example.com", Password: "hunter22"}, wantErr: user.ErrInvalidEmail},
		{name: "ShortPassword", req: user.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "123"}, wantErr: user.ErrWeakPassword},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, tokens := newService(t)

			u, token, err := svc.Register(context.Background(), &tc.req)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ana@example.com", u.Email)
			assert.NotEqual(t, "hunter22", u.PasswordHash)

			id, err := tokens.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, u.ID, id)
		})
	}
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, &user.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, &user.RegisterRequest{Name: "Other Ana", Email: "ANA@example.com", Password: "hunter23"})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyInUse)
}

func TestService_Login(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, &user.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	u, token, err := svc.Login(ctx, &user.LoginRequest{Email: "ANA@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, &user.LoginRequest{Email: "ana@example.com", Password: "wrong-one"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, &user.LoginRequest{Email: "bob@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestService_GetByID(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, &user.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	u, err := svc.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.WithinDuration(t, registered.CreatedAt, u.CreatedAt, time.Millisecond)

	_, err = svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func register(t *testing.T, svc *user.Service, name string) *user.User {
	t.Helper()
	u, _, err := svc.Register(context.Background(), &user.RegisterRequest{Name: name, Email: name + "@example.com", Password: "hunter22"})
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string { return &s }

func TestService_Update(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ana := register(t, svc, "ana")
	register(t, svc, "ben")

	u, err := svc.Update(ctx, ana.ID, &user.UpdateUserRequest{Name: strPtr(" Ana Maria "), Email: strPtr("ANA.M@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", u.Name)
	assert.Equal(t, "ana.m@example.com", u.Email)

	_, _, err = svc.Login(ctx, &user.LoginRequest{Email: "ana.m@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, ana.ID, &user.UpdateUserRequest{Password: strPtr("new-secret")})
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, &user.LoginRequest{Email: "ana.m@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, &user.LoginRequest{Email: "ana.m@example.com", Password: "new-secret"})
	require.NoError(t, err)

	type testCase struct {
		name    string
		req     user.UpdateUserRequest
		wantErr error
	}

	tests := []testCase{
		{name: "BlankName", req: user.UpdateUserRequest{Name: strPtr(" ")}, wantErr: user.ErrNameRequired},
		{name: "TakenEmail", req: user.UpdateUserRequest{Email: strPtr("ben@example.com")}, wantErr: user.ErrEmailAlreadyInUse},
		{name: "BadEmail", req: user.UpdateUserRequest{Email: strPtr("nope")}, wantErr: user.ErrInvalidEmail},
		{name: "ShortPassword", req: user.UpdateUserRequest{Password: strPtr("123")}, wantErr: user.ErrWeakPassword},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(ctx, ana.ID, &tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	_, err = svc.Update(ctx, uuid.New(), &user.UpdateUserRequest{Name: strPtr("Ghost")})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestService_List(t *testing.T) {
	svc, _ := newService(t)
	for _, name := range []string{"ana", "ben", "cleo"} {
		register(t, svc, name)
	}

	users, total, err := svc.List(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, users, 2)

	users, _, err = svc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestService_Delete(t *testing.T) {
	db := databasetest.Open(t)
	repo := user.NewRepository(db)
	svc := user.NewService(repo, auth.NewTokenManager("test-secret", time.Hour))
	ctx := context.Background()

	ana := register(t, svc, "ana")
	ben := register(t, svc, "ben")

	g := &group.Group{ID: uuid.New(), Name: "Flat", CreatedBy: ana.ID, Members: []uuid.UUID{ana.ID}, CreatedAt: time.Now().UTC()}
	require.NoError(t, group.NewRepository(db).Create(ctx, g))

	err := svc.Delete(ctx, ana.ID)
	require.ErrorIs(t, err, user.ErrUserHasHistory)

	require.NoError(t, svc.Delete(ctx, ben.ID))
	_, err = svc.GetByID(ctx, ben.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	err = svc.Delete(ctx, ben.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
