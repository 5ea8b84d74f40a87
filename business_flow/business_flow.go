package businessflow

import (
	"time"

	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const RequestIDKey = "X-Request-ID"

const dateLayout = "2006-01-02"

// ClientMetadata holds client information attached to admin actions
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
	AdminID   *uint  `json:"admin_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// SetAdminID sets the authenticated admin
func (cm *ClientMetadata) SetAdminID(adminID uint) {
	cm.AdminID = &adminID
}

// ToAdminDTOModel converts an admin model to its API representation
func ToAdminDTOModel(admin models.Admin) dto.AdminDTO {
	out := dto.AdminDTO{
		ID:        admin.ID,
		UUID:      admin.UUID.String(),
		Username:  admin.Username,
		IsActive:  admin.IsActive,
		CreatedAt: admin.CreatedAt.Format(time.RFC3339),
	}
	if admin.LastLoginAt != nil {
		lastLogin := admin.LastLoginAt.Format(time.RFC3339)
		out.LastLoginAt = &lastLogin
	}
	return out
}

// ToAdminSessionDTO wraps issued tokens into a session
func ToAdminSessionDTO(accessToken, refreshToken string, expiresIn time.Duration) dto.AdminSessionDTO {
	return dto.AdminSessionDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(expiresIn.Seconds()),
		TokenType:    "Bearer",
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

func moneyString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}

func dateString(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dateLayout)
	return &s
}
