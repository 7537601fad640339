package web

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
)

// flash is a one-shot message shown on the next rendered page.
type flash struct {
	Kind string
	Text string
}

func flashKind(s models.ResultStatus) string {
	if s == models.StatusSuccess {
		return "success"
	}
	return "error"
}

func setFlash(w http.ResponseWriter, kind, text string, secure bool) {
	raw := kind + "\n" + text
	http.SetCookie(w, &http.Cookie{
		Name:     common.FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(raw)),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads the pending message, if any, and expires the cookie.
func popFlash(w http.ResponseWriter, r *http.Request, secure bool) *flash {
	c, err := r.Cookie(common.FlashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	kind, text, ok := strings.Cut(string(raw), "\n")
	if !ok || text == "" {
		return nil
	}
	return &flash{Kind: kind, Text: text}
}
