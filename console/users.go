package console

import (
	"context"
	"net/http"

	"github.com/kbukum/consoleapi/httpclient"
	"github.com/kbukum/consoleapi/httpclient/rest"
	"github.com/kbukum/consoleapi/validation"
)

// AuthRoot is the root path of the console auth API.
const AuthRoot = "/api/v0/auth"

// UsersAPI exposes the account operations of the console.
type UsersAPI interface {
	// Update changes the account's full and short name.
	Update(ctx context.Context, user UpdatedUser) error
	// Get fetches the authenticated account.
	Get(ctx context.Context) (User, error)
	// GetFrozenStatus fetches the account freeze status.
	GetFrozenStatus(ctx context.Context) (FreezeStatus, error)
	// GetUserSettings fetches the account settings.
	GetUserSettings(ctx context.Context) (UserSettings, error)
	// UpdateSettings changes settings and returns the stored result.
	UpdateSettings(ctx context.Context, data SetUserSettingsData) (UserSettings, error)
	// EnableUserMFA turns on MFA once passcode confirms the secret.
	EnableUserMFA(ctx context.Context, passcode string) error
	// DisableUserMFA turns off MFA with a passcode or a recovery code.
	DisableUserMFA(ctx context.Context, passcode, recoveryCode string) error
	// GenerateUserMFASecret creates a new TOTP secret.
	GenerateUserMFASecret(ctx context.Context) (string, error)
	// GenerateUserMFARecoveryCodes creates a fresh set of recovery codes.
	GenerateUserMFARecoveryCodes(ctx context.Context) ([]string, error)
	// RegenerateUserMFARecoveryCodes replaces recovery codes, proven by a
	// passcode or an existing recovery code.
	RegenerateUserMFARecoveryCodes(ctx context.Context, passcode, recoveryCode string) ([]string, error)
	// RequestProjectLimitIncrease asks support to raise the project limit.
	RequestProjectLimitIncrease(ctx context.Context, limit string) error
}

// UsersHTTPAPI implements UsersAPI over HTTP.
type UsersHTTPAPI struct {
	client *rest.Client
}

var _ UsersAPI = (*UsersHTTPAPI)(nil)

// NewUsersHTTPAPI creates the users API on c.
func NewUsersHTTPAPI(c *rest.Client) *UsersHTTPAPI {
	return &UsersHTTPAPI{client: c}
}

func authPath(segments ...string) string {
	return httpclient.JoinPath(AuthRoot, segments...)
}

// Update implements UsersAPI.
func (u *UsersHTTPAPI) Update(ctx context.Context, user UpdatedUser) error {
	if err := user.Validate(); err != nil {
		return err
	}
	return rest.Send(ctx, u.client, http.MethodPatch, authPath("account"), nil, user)
}

// Get implements UsersAPI.
func (u *UsersHTTPAPI) Get(ctx context.Context) (User, error) {
	return rest.Fetch[User](ctx, u.client, http.MethodGet, authPath("account"), nil, nil)
}

// GetFrozenStatus implements UsersAPI.
func (u *UsersHTTPAPI) GetFrozenStatus(ctx context.Context) (FreezeStatus, error) {
	return rest.Fetch[FreezeStatus](ctx, u.client, http.MethodGet, authPath("account", "freezestatus"), nil, nil)
}

// GetUserSettings implements UsersAPI.
func (u *UsersHTTPAPI) GetUserSettings(ctx context.Context) (UserSettings, error) {
	return rest.Fetch[UserSettings](ctx, u.client, http.MethodGet, authPath("account", "settings"), nil, nil)
}

// UpdateSettings implements UsersAPI.
func (u *UsersHTTPAPI) UpdateSettings(ctx context.Context, data SetUserSettingsData) (UserSettings, error) {
	return rest.Fetch[UserSettings](ctx, u.client, http.MethodPatch, authPath("account", "settings"), nil, data)
}

// EnableUserMFA implements UsersAPI.
func (u *UsersHTTPAPI) EnableUserMFA(ctx context.Context, passcode string) error {
	if err := validation.Required("passcode", passcode); err != nil {
		return err
	}
	body := map[string]string{"passcode": passcode}
	return rest.Send(ctx, u.client, http.MethodPost, authPath("mfa", "enable"), nil, body)
}

// DisableUserMFA implements UsersAPI.
func (u *UsersHTTPAPI) DisableUserMFA(ctx context.Context, passcode, recoveryCode string) error {
	if err := requireSecondFactor(passcode, recoveryCode); err != nil {
		return err
	}
	body := DisableMFARequest{Passcode: passcode, RecoveryCode: recoveryCode}
	return rest.Send(ctx, u.client, http.MethodPost, authPath("mfa", "disable"), nil, body)
}

// GenerateUserMFASecret implements UsersAPI.
func (u *UsersHTTPAPI) GenerateUserMFASecret(ctx context.Context) (string, error) {
	return rest.Fetch[string](ctx, u.client, http.MethodPost, authPath("mfa", "generate-secret-key"), nil, nil)
}

// GenerateUserMFARecoveryCodes implements UsersAPI.
func (u *UsersHTTPAPI) GenerateUserMFARecoveryCodes(ctx context.Context) ([]string, error) {
	return rest.Fetch[[]string](ctx, u.client, http.MethodPost, authPath("mfa", "generate-recovery-codes"), nil, nil)
}

// RegenerateUserMFARecoveryCodes implements UsersAPI.
func (u *UsersHTTPAPI) RegenerateUserMFARecoveryCodes(ctx context.Context, passcode, recoveryCode string) ([]string, error) {
	if err := requireSecondFactor(passcode, recoveryCode); err != nil {
		return nil, err
	}
	body := map[string]string{}
	if passcode != "" {
		body["passcode"] = passcode
	}
	if recoveryCode != "" {
		body["recoveryCode"] = recoveryCode
	}
	return rest.Fetch[[]string](ctx, u.client, http.MethodPost, authPath("mfa", "regenerate-recovery-codes"), nil, body)
}

// RequestProjectLimitIncrease implements UsersAPI.
func (u *UsersHTTPAPI) RequestProjectLimitIncrease(ctx context.Context, limit string) error {
	if err := validation.Required("limit", limit); err != nil {
		return err
	}
	body := map[string]string{"limit": limit}
	return rest.Send(ctx, u.client, http.MethodPost, authPath("limit-increase"), nil, body)
}

func requireSecondFactor(passcode, recoveryCode string) error {
	return validation.New().
		Custom(passcode != "" || recoveryCode != "", "passcode", "passcode or recoveryCode is required").
		Validate()
}
