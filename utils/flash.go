package utils

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"

	flashTextKey = "flash_text"
	flashKindKey = "flash_kind"
	csrfTokenKey = "csrf_token"
)

// Flash is the single-slot, consume-once notification carried across a
// redirect in the session.
type Flash struct {
	Text string
	Kind string
}

func SetFlash(c *gin.Context, kind, text string) {
	session := sessions.Default(c)
	session.Set(flashKindKey, kind)
	session.Set(flashTextKey, text)
	if err := session.Save(); err != nil {
		ErrorLogger.Errorf("failed to save flash message: %v", err)
	}
}

// ConsumeFlash returns the pending flash message and clears it, so the next
// render starts with an empty slot.
func ConsumeFlash(c *gin.Context) (Flash, bool) {
	session := sessions.Default(c)
	text, _ := session.Get(flashTextKey).(string)
	if text == "" {
		return Flash{}, false
	}
	kind, _ := session.Get(flashKindKey).(string)
	if kind == "" {
		kind = FlashSuccess
	}

	session.Delete(flashTextKey)
	session.Delete(flashKindKey)
	if err := session.Save(); err != nil {
		ErrorLogger.Errorf("failed to clear flash message: %v", err)
	}
	return Flash{Text: text, Kind: kind}, true
}

// CSRFToken returns the per-session token, minting one on first use.
func CSRFToken(c *gin.Context) string {
	session := sessions.Default(c)
	if token, ok := session.Get(csrfTokenKey).(string); ok && token != "" {
		return token
	}

	token := uuid.NewString()
	session.Set(csrfTokenKey, token)
	if err := session.Save(); err != nil {
		ErrorLogger.Errorf("failed to save csrf token: %v", err)
	}
	return token
}

// CheckCSRF compares a submitted token against the session token. A session
// with no token yet always fails the check.
func CheckCSRF(c *gin.Context, submitted string) bool {
	session := sessions.Default(c)
	token, _ := session.Get(csrfTokenKey).(string)
	return token != "" && submitted == token
}
