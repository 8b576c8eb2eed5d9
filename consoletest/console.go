package consoletest

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/consoleapi/console"
)

const recoveryCodeCount = 10

func (s *Server) registerConsole(g *gin.RouterGroup) {
	g.POST("/token", s.token)
	g.POST("/logout", s.logout)

	authed := g.Group("", s.sessionAuth())
	authed.GET("/account", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.Account())
	})
	authed.PATCH("/account", s.updateAccount)
	authed.GET("/account/freezestatus", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.Account().FreezeStatus)
	})
	authed.GET("/account/settings", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.userSettings())
	})
	authed.PATCH("/account/settings", s.updateSettings)
	authed.POST("/mfa/enable", s.enableMFA)
	authed.POST("/mfa/disable", s.disableMFA)
	authed.POST("/mfa/generate-secret-key", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.resetMFASecret())
	})
	authed.POST("/mfa/generate-recovery-codes", s.generateRecoveryCodes)
	authed.POST("/mfa/regenerate-recovery-codes", s.regenerateRecoveryCodes)
	authed.POST("/limit-increase", s.limitIncrease)
}

func (s *Server) token(c *gin.Context) {
	var req console.AuthUser
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "There was an error processing your request")
		return
	}
	if !s.store.checkPassword(req.Email, req.Password) {
		apiError(c, http.StatusUnauthorized, "Your email or password was incorrect, please try again")
		return
	}

	now := s.config.Now()
	info := console.TokenInfo{
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.config.SessionTTL).UTC().Truncate(time.Second),
	}
	s.store.addSession(info.Token, info.ExpiresAt)

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     console.TokenCookie,
		Value:    info.Token,
		Path:     "/",
		Expires:  info.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	c.JSON(http.StatusOK, info)
}

func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(console.TokenCookie); err == nil {
		s.store.removeSession(token)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:   console.TokenCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	c.Header("Content-Type", "application/json")
	c.Status(http.StatusOK)
}

func (s *Server) updateAccount(c *gin.Context) {
	var req console.UpdatedUser
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "There was an error processing your request")
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		apiError(c, http.StatusBadRequest, "full name can not be empty")
		return
	}
	s.store.updateAccount(req.FullName, req.ShortName)
	c.Status(http.StatusOK)
}

func (s *Server) updateSettings(c *gin.Context) {
	var req console.SetUserSettingsData
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "There was an error processing your request")
		return
	}
	c.JSON(http.StatusOK, s.store.updateSettings(req))
}

func (s *Server) enableMFA(c *gin.Context) {
	var req struct {
		Passcode string `json:"passcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "There was an error processing your request")
		return
	}
	if !s.store.hasMFASecret() || req.Passcode != ValidPasscode {
		apiError(c, http.StatusBadRequest, "The MFA passcode is not valid or has expired")
		return
	}
	s.store.setMFA(true)
	c.Status(http.StatusOK)
}

func (s *Server) disableMFA(c *gin.Context) {
	var req console.DisableMFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "There was an error processing your request")
		return
	}
	if !s.checkSecondFactor(c, req.Passcode, req.RecoveryCode) {
		return
	}
	s.store.setMFA(false)
	c.Status(http.StatusOK)
}

func (s *Server) generateRecoveryCodes(c *gin.Context) {
	if !s.store.Account().IsMFAEnabled {
		apiError(c, http.StatusUnauthorized, "MFA is not enabled")
		return
	}
	c.JSON(http.StatusOK, s.store.resetRecoveryCodes())
}

func (s *Server) regenerateRecoveryCodes(c *gin.Context) {
	var req console.DisableMFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "There was an error processing your request")
		return
	}
	if !s.checkSecondFactor(c, req.Passcode, req.RecoveryCode) {
		return
	}
	c.JSON(http.StatusOK, s.store.resetRecoveryCodes())
}

func (s *Server) limitIncrease(c *gin.Context) {
	var req struct {
		Limit string `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Limit == "" {
		apiError(c, http.StatusBadRequest, "limit is required")
		return
	}
	s.store.addLimitRequest(req.Limit)
	c.Status(http.StatusOK)
}

// checkSecondFactor writes the error response and reports false when neither
// or both factors are given, or the given one is wrong.
func (s *Server) checkSecondFactor(c *gin.Context, passcode, recoveryCode string) bool {
	switch {
	case !s.store.Account().IsMFAEnabled:
		apiError(c, http.StatusUnauthorized, "MFA is not enabled")
	case passcode == "" && recoveryCode == "":
		apiError(c, http.StatusBadRequest, "A MFA passcode or recovery code is required")
	case passcode != "" && recoveryCode != "":
		apiError(c, http.StatusConflict, "Expected either passcode or recovery code, but got both")
	case passcode != "" && passcode != ValidPasscode:
		apiError(c, http.StatusBadRequest, "The MFA passcode is not valid or has expired")
	case recoveryCode != "" && !s.store.useRecoveryCode(recoveryCode):
		apiError(c, http.StatusBadRequest, "The MFA recovery code is not valid or has been previously used")
	default:
		return true
	}
	return false
}

func (s *Store) checkPassword(email, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.EqualFold(email, s.account.Email) && password == s.password
}

func (s *Store) addSession(token string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = expires
}

func (s *Store) removeSession(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func (s *Store) validSession(token string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires, ok := s.sessions[token]
	return ok && now.Before(expires)
}

func (s *Store) updateAccount(fullName, shortName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account.FullName = fullName
	s.account.ShortName = shortName
}

func (s *Store) userSettings() console.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) updateSettings(req console.SetUserSettingsData) console.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.OnboardingStart != nil {
		s.settings.OnboardingStart = *req.OnboardingStart
	}
	if req.OnboardingEnd != nil {
		s.settings.OnboardingEnd = *req.OnboardingEnd
	}
	if req.PassphrasePrompt != nil {
		s.settings.PassphrasePrompt = *req.PassphrasePrompt
	}
	if req.OnboardingStep != nil {
		step := *req.OnboardingStep
		s.settings.OnboardingStep = &step
	}
	if req.SessionDuration != nil {
		d := *req.SessionDuration
		s.settings.SessionDurationRaw = &d
	}
	return s.settings
}

func (s *Store) resetMFASecret() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mfaSecret = strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
	return s.mfaSecret
}

func (s *Store) hasMFASecret() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mfaSecret != ""
}

func (s *Store) setMFA(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account.IsMFAEnabled = enabled
	if !enabled {
		s.mfaSecret = ""
		s.recoveryCodes = nil
		s.account.MFARecoveryCodeCount = 0
	}
}

func (s *Store) resetRecoveryCodes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	codes := make([]string, recoveryCodeCount)
	for i := range codes {
		codes[i] = strings.ToUpper(uuid.NewString()[:8])
	}
	s.recoveryCodes = codes
	s.account.MFARecoveryCodeCount = len(codes)
	return slices.Clone(codes)
}

func (s *Store) useRecoveryCode(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.recoveryCodes, code)
	if i < 0 {
		return false
	}
	s.recoveryCodes = slices.Delete(s.recoveryCodes, i, i+1)
	s.account.MFARecoveryCodeCount = len(s.recoveryCodes)
	return true
}

func (s *Store) addLimitRequest(limit string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limitRequests = append(s.limitRequests, limit)
}
