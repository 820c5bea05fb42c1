package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"umkm-kembar-barokah/internal/model"
	"umkm-kembar-barokah/internal/repository"
	"umkm-kembar-barokah/internal/service"
	"umkm-kembar-barokah/internal/testdb"
	"umkm-kembar-barokah/pkg/jwt"
)

func newAuth(t *testing.T) service.AuthService {
	t.Helper()
	db := testdb.New(t)
	return service.NewAuthService(repository.NewUserRepo(db), jwt.NewManager("test-secret", time.Hour), zap.NewNop())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuth(t)

	user, err := svc.Register(ctx, &service.RegisterRequest{Username: " siti ", Password: "rahasia1"})
	require.NoError(t, err)
	assert.Equal(t, "siti", user.Username)
	assert.NotEqual(t, "rahasia1", user.Password)

	resp, err := svc.Login(ctx, &service.LoginRequest{Username: "siti", Password: "rahasia1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	authed, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "siti", authed.Username)
}

func TestAuthService_Register_Rejected(t *testing.T) {
	ctx := context.Background()
	svc := newAuth(t)
	_, err := svc.Register(ctx, &service.RegisterRequest{Username: "siti", Password: "rahasia1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     service.RegisterRequest
		wantErr func(t *testing.T, err error)
	}{
		{
			name: "Duplicate",
			req:  service.RegisterRequest{Username: "siti", Password: "lainnya1"},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, service.ErrUsernameTaken)
			},
		},
		{
			name: "ShortPassword",
			req:  service.RegisterRequest{Username: "budi", Password: "123"},
			wantErr: func(t *testing.T, err error) {
				var vErr *service.ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, []string{"password minimal 6 karakter"}, vErr.Errors)
			},
		},
		{
			name: "Empty",
			req:  service.RegisterRequest{},
			wantErr: func(t *testing.T, err error) {
				var vErr *service.ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Len(t, vErr.Errors, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Register(ctx, &req)
			require.Error(t, err)
			tt.wantErr(t, err)
		})
	}
}

// staleUsers misses every username lookup, like a second registration that
// checked before the first one committed.
type staleUsers struct {
	repository.UserRepository
}

func (staleUsers) FindByUsername(context.Context, string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestAuthService_Register_LosesInsertRace(t *testing.T) {
	ctx := context.Background()
	users := staleUsers{repository.NewUserRepo(testdb.New(t))}
	svc := service.NewAuthService(users, jwt.NewManager("test-secret", time.Hour), zap.NewNop())

	_, err := svc.Register(ctx, &service.RegisterRequest{Username: "siti", Password: "rahasia1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &service.RegisterRequest{Username: "siti", Password: "rahasia2"})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAuth(t)
	_, err := svc.Register(ctx, &service.RegisterRequest{Username: "siti", Password: "rahasia1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &service.LoginRequest{Username: "siti", Password: "salah123"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &service.LoginRequest{Username: "tidakada", Password: "rahasia1"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	svc := newAuth(t)
	_, err := svc.Register(ctx, &service.RegisterRequest{Username: "siti", Password: "rahasia1"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, &service.ChangePasswordRequest{
		Username: "siti", OldPassword: "rahasia1", NewPassword: "baru1234", ConfirmPassword: "beda1234",
	})
	var vErr *service.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"confirm_password tidak cocok"}, vErr.Errors)

	err = svc.ChangePassword(ctx, &service.ChangePasswordRequest{
		Username: "siti", OldPassword: "keliru12", NewPassword: "baru1234", ConfirmPassword: "baru1234",
	})
	assert.ErrorIs(t, err, service.ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, &service.ChangePasswordRequest{
		Username: "siti", OldPassword: "rahasia1", NewPassword: "baru1234", ConfirmPassword: "baru1234",
	}))

	_, err = svc.Login(ctx, &service.LoginRequest{Username: "siti", Password: "rahasia1"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = svc.Login(ctx, &service.LoginRequest{Username: "siti", Password: "baru1234"})
	assert.NoError(t, err)

	err = svc.ChangePassword(ctx, &service.ChangePasswordRequest{
		Username: "tidakada", OldPassword: "x", NewPassword: "baru1234", ConfirmPassword: "baru1234",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAuthService_Authenticate_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := newAuth(t)

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, jwt.ErrMissingToken)

	_, err = svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	// Signed correctly but the user was never stored.
	token, err := jwt.NewManager("test-secret", time.Hour).GenerateToken(uuid.New(), "ghost")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
