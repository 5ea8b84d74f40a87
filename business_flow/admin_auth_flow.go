package businessflow

import (
	"context"
	"time"

	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/app/services"
	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/repository"
	"github.com/jasado/jasado-middleware/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthFlow represents the admin authentication flow used by handlers
type AdminAuthFlow interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error)
	Refresh(ctx context.Context, req *dto.AdminRefreshRequest) (*dto.AdminSessionDTO, error)
	Logout(ctx context.Context, accessToken string) error
	EnsureBootstrapAdmin(ctx context.Context, username, password string) error
}

// AdminAuthFlowImpl verifies admin credentials and issues tokens
type AdminAuthFlowImpl struct {
	adminRepo    repository.AdminRepository
	tokenService services.TokenService
	bcryptCost   int
	logger       logrus.FieldLogger
	now          func() time.Time
}

func NewAdminAuthFlow(adminRepo repository.AdminRepository, tokenService services.TokenService, bcryptCost int, logger logrus.FieldLogger) AdminAuthFlow {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AdminAuthFlowImpl{
		adminRepo:    adminRepo,
		tokenService: tokenService,
		bcryptCost:   bcryptCost,
		logger:       logger,
		now:          utils.UTCNow,
	}
}

func (af *AdminAuthFlowImpl) Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error) {
	if req == nil {
		return nil, NewBusinessError("ADMIN_LOGIN_VALIDATION_FAILED", "Admin login validation failed", ErrAdminNotFound)
	}
	if len(req.Username) == 0 || len(req.Password) == 0 {
		return nil, NewBusinessError("ADMIN_LOGIN_VALIDATION_FAILED", "Admin login validation failed", ErrIncorrectPassword)
	}

	admin, err := af.adminRepo.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		return nil, NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", ErrAdminNotFound)
	}
	if !utils.IsTrue(admin.IsActive) {
		return nil, NewBusinessError("ADMIN_INACTIVE", "Admin account is inactive", ErrAdminInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewBusinessError("ADMIN_INCORRECT_PASSWORD", "Incorrect password", ErrIncorrectPassword)
	}

	accessToken, refreshToken, err := af.tokenService.GenerateAdminTokens(admin.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	loginAt := af.now()
	if err := af.adminRepo.UpdateLastLogin(ctx, admin.ID, loginAt); err != nil {
		// the session is valid even when the bookkeeping fails
		af.logger.WithError(err).WithField("admin_id", admin.ID).Warn("Failed to record admin login")
	} else {
		admin.LastLoginAt = &loginAt
	}

	fields := logrus.Fields{"admin_id": admin.ID}
	if metadata != nil {
		fields["ip_address"] = metadata.IPAddress
		fields["request_id"] = metadata.RequestID
	}
	af.logger.WithFields(fields).Info("Admin logged in")

	return &dto.AdminLoginResponse{
		Admin:   ToAdminDTOModel(*admin),
		Session: ToAdminSessionDTO(accessToken, refreshToken, af.tokenService.AccessTokenTTL()),
	}, nil
}

func (af *AdminAuthFlowImpl) Refresh(ctx context.Context, req *dto.AdminRefreshRequest) (*dto.AdminSessionDTO, error) {
	if req == nil || req.RefreshToken == "" {
		return nil, NewBusinessError("INVALID_REQUEST", "refresh token is required", services.ErrTokenInvalid)
	}

	claims, err := af.tokenService.ValidateAdminToken(req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("INVALID_REFRESH_TOKEN", "Refresh token is invalid", err)
	}
	admin, err := af.adminRepo.ByID(ctx, claims.AdminID)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		return nil, NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", ErrAdminNotFound)
	}
	if !utils.IsTrue(admin.IsActive) {
		return nil, NewBusinessError("ADMIN_INACTIVE", "Admin account is inactive", ErrAdminInactive)
	}

	accessToken, refreshToken, err := af.tokenService.RefreshAdminToken(req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("INVALID_REFRESH_TOKEN", "Refresh token is invalid", err)
	}
	session := ToAdminSessionDTO(accessToken, refreshToken, af.tokenService.AccessTokenTTL())
	return &session, nil
}

func (af *AdminAuthFlowImpl) Logout(ctx context.Context, accessToken string) error {
	if err := af.tokenService.RevokeToken(accessToken); err != nil {
		return NewBusinessError("TOKEN_REVOCATION_FAILED", "Failed to revoke token", err)
	}
	return nil
}

// EnsureBootstrapAdmin creates the configured admin unless it already exists.
// Empty credentials disable bootstrapping.
func (af *AdminAuthFlowImpl) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	existing, err := af.adminRepo.ByUsername(ctx, username)
	if err != nil {
		return NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), af.bcryptCost)
	if err != nil {
		return NewBusinessError("PASSWORD_HASH_FAILED", "Failed to hash admin password", err)
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     utils.ToPtr(true),
	}
	if err := af.adminRepo.Save(ctx, admin); err != nil {
		return NewBusinessError("ADMIN_CREATE_FAILED", "Failed to create bootstrap admin", err)
	}

	af.logger.WithFields(logrus.Fields{"admin_id": admin.ID, "username": username}).Info("Bootstrap admin created")
	return nil
}
