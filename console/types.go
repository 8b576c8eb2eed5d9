package console

import (
	"strings"
	"time"

	"github.com/kbukum/consoleapi/validation"
)

// User is the authenticated account as returned by GET /account.
type User struct {
	ID                    string       `json:"id"`
	FullName              string       `json:"fullName"`
	ShortName             string       `json:"shortName"`
	Email                 string       `json:"email"`
	Partner               string       `json:"partner"`
	ProjectLimit          int64        `json:"projectLimit"`
	ProjectStorageLimit   int64        `json:"projectStorageLimit"`
	ProjectBandwidthLimit int64        `json:"projectBandwidthLimit"`
	ProjectSegmentLimit   int64        `json:"projectSegmentLimit"`
	PaidTier              bool         `json:"paidTier"`
	IsMFAEnabled          bool         `json:"isMFAEnabled"`
	IsProfessional        bool         `json:"isProfessional"`
	Position              string       `json:"position"`
	CompanyName           string       `json:"companyName"`
	EmployeeCount         string       `json:"employeeCount"`
	HaveSalesContact      bool         `json:"haveSalesContact"`
	MFARecoveryCodeCount  int          `json:"mfaRecoveryCodeCount"`
	CreatedAtRaw          string       `json:"createdAt,omitempty"`
	SignupPromoCode       string       `json:"signupPromoCode"`
	FreezeStatus          FreezeStatus `json:"freezeStatus"`
}

// CreatedAt parses the account creation time. It reports false when the
// server sent no value or one that is not RFC 3339.
func (u User) CreatedAt() (time.Time, bool) {
	if u.CreatedAtRaw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, u.CreatedAtRaw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DisplayName returns the short name when set, otherwise the full name.
func (u User) DisplayName() string {
	if u.ShortName != "" {
		return u.ShortName
	}
	return u.FullName
}

// UpdatedUser is the payload for updating the account names.
type UpdatedUser struct {
	FullName  string `json:"fullName"`
	ShortName string `json:"shortName"`
}

// NewUpdatedUser trims both names.
func NewUpdatedUser(fullName, shortName string) UpdatedUser {
	return UpdatedUser{
		FullName:  strings.TrimSpace(fullName),
		ShortName: strings.TrimSpace(shortName),
	}
}

// Validate requires a full name.
func (u UpdatedUser) Validate() error {
	return validation.Required("fullName", u.FullName)
}

// DisableMFARequest carries the second factor proving MFA ownership.
type DisableMFARequest struct {
	Passcode     string `json:"passcode"`
	RecoveryCode string `json:"recoveryCode"`
}

// AuthUser is the login payload for Token.
type AuthUser struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	MFAPasscode     string `json:"mfaPasscode,omitempty"`
	MFARecoveryCode string `json:"mfaRecoveryCode,omitempty"`
}

// TokenInfo is the session token returned by Token.
type TokenInfo struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserSettings is the response of GET /account/settings.
type UserSettings struct {
	SessionDurationRaw *int64  `json:"sessionDuration"`
	OnboardingStart    bool    `json:"onboardingStart"`
	OnboardingEnd      bool    `json:"onboardingEnd"`
	PassphrasePrompt   bool    `json:"passphrasePrompt"`
	OnboardingStep     *string `json:"onboardingStep"`
}

// SessionDuration returns the configured session length. The raw value is
// in nanoseconds; null and zero both mean the server default applies.
func (s UserSettings) SessionDuration() (time.Duration, bool) {
	if s.SessionDurationRaw == nil || *s.SessionDurationRaw == 0 {
		return 0, false
	}
	return time.Duration(*s.SessionDurationRaw), true
}

// SetUserSettingsData is a partial settings update. Nil fields are left
// unchanged.
type SetUserSettingsData struct {
	OnboardingStart  *bool   `json:"onboardingStart,omitempty"`
	OnboardingEnd    *bool   `json:"onboardingEnd,omitempty"`
	PassphrasePrompt *bool   `json:"passphrasePrompt,omitempty"`
	OnboardingStep   *string `json:"onboardingStep,omitempty"`
	SessionDuration  *int64  `json:"sessionDuration,omitempty"`
}

// WithSessionDuration sets the session duration field.
func (d SetUserSettingsData) WithSessionDuration(v time.Duration) SetUserSettingsData {
	ns := int64(v)
	d.SessionDuration = &ns
	return d
}

// FreezeStatus reports whether the account is frozen or warned.
type FreezeStatus struct {
	Frozen bool `json:"frozen"`
	Warned bool `json:"warned"`
}
