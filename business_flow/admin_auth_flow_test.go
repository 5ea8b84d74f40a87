package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/app/services"
	"github.com/jasado/jasado-middleware/utils"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAdminAuthFlow(t *testing.T) (*AdminAuthFlowImpl, *fakeAdminRepo, services.TokenService) {
	t.Helper()
	tokens, err := services.NewTokenService(time.Hour, 24*time.Hour, "jasado", "jasado-admin", false, "", "", "test-secret-key-for-jwt-signing-32-chars")
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	repo := newFakeAdminRepo()
	flow := NewAdminAuthFlow(repo, tokens, bcrypt.MinCost, logger).(*AdminAuthFlowImpl)
	flow.now = func() time.Time { return runTime }
	require.NoError(t, flow.EnsureBootstrapAdmin(context.Background(), "admin", "SecurePass123!"))
	return flow, repo, tokens
}

func TestAdminAuthFlowBootstrap(t *testing.T) {
	flow, repo, _ := newTestAdminAuthFlow(t)

	admin := repo.admins["admin"]
	require.NotNil(t, admin)
	assert.True(t, utils.IsTrue(admin.IsActive))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("SecurePass123!")))

	// existing admins keep their password
	require.NoError(t, flow.EnsureBootstrapAdmin(context.Background(), "admin", "OtherPass123!"))
	assert.Same(t, admin, repo.admins["admin"])
	assert.Equal(t, uint(1), repo.nextID)

	require.NoError(t, flow.EnsureBootstrapAdmin(context.Background(), "", ""))
	assert.Len(t, repo.admins, 1)
}

func TestAdminAuthFlowLogin(t *testing.T) {
	tests := []struct {
		name     string
		req      *dto.AdminLoginRequest
		inactive bool
		wantCode string
	}{
		{name: "Success", req: &dto.AdminLoginRequest{Username: "admin", Password: "SecurePass123!"}},
		{name: "UnknownAdmin", req: &dto.AdminLoginRequest{Username: "nobody", Password: "SecurePass123!"}, wantCode: "ADMIN_NOT_FOUND"},
		{name: "WrongPassword", req: &dto.AdminLoginRequest{Username: "admin", Password: "WrongPass123!"}, wantCode: "ADMIN_INCORRECT_PASSWORD"},
		{name: "Inactive", req: &dto.AdminLoginRequest{Username: "admin", Password: "SecurePass123!"}, inactive: true, wantCode: "ADMIN_INACTIVE"},
		{name: "EmptyPassword", req: &dto.AdminLoginRequest{Username: "admin"}, wantCode: "ADMIN_LOGIN_VALIDATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, repo, tokens := newTestAdminAuthFlow(t)
			if tt.inactive {
				repo.admins["admin"].IsActive = utils.ToPtr(false)
			}

			resp, err := flow.Login(context.Background(), tt.req, NewClientMetadata("127.0.0.1", "test"))
			if tt.wantCode != "" {
				var bizErr *BusinessError
				require.True(t, errors.As(err, &bizErr))
				assert.Equal(t, tt.wantCode, bizErr.Code)
				assert.Empty(t, repo.lastLogin)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "admin", resp.Admin.Username)
			require.NotNil(t, resp.Admin.LastLoginAt)
			assert.Equal(t, runTime.Format(time.RFC3339), *resp.Admin.LastLoginAt)
			assert.Equal(t, 3600, resp.Session.ExpiresIn)
			assert.Equal(t, "Bearer", resp.Session.TokenType)
			assert.Equal(t, runTime, repo.lastLogin[resp.Admin.ID])

			claims, err := tokens.ValidateAdminToken(resp.Session.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, resp.Admin.ID, claims.AdminID)
			assert.Equal(t, services.TokenTypeAccess, claims.TokenType)
		})
	}
}

func TestAdminAuthFlowRefreshAndLogout(t *testing.T) {
	flow, _, tokens := newTestAdminAuthFlow(t)
	ctx := context.Background()

	login, err := flow.Login(ctx, &dto.AdminLoginRequest{Username: "admin", Password: "SecurePass123!"}, nil)
	require.NoError(t, err)

	session, err := flow.Refresh(ctx, &dto.AdminRefreshRequest{RefreshToken: login.Session.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.Session.RefreshToken, session.RefreshToken)

	// refresh tokens are single use
	_, err = flow.Refresh(ctx, &dto.AdminRefreshRequest{RefreshToken: login.Session.RefreshToken})
	assert.ErrorIs(t, err, services.ErrTokenRevoked)

	_, err = flow.Refresh(ctx, &dto.AdminRefreshRequest{RefreshToken: session.AccessToken})
	assert.ErrorIs(t, err, services.ErrTokenInvalid)

	require.NoError(t, flow.Logout(ctx, session.AccessToken))
	assert.True(t, tokens.IsTokenRevoked(session.AccessToken))
}
