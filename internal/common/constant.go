package common

const (
	// SessionCookieName carries the signed session token.
	SessionCookieName = "planner_session"

	// FlashCookieName carries a one-shot message for the next rendered page.
	FlashCookieName = "planner_flash"

	// RequestIDHeaderName is echoed on every response.
	RequestIDHeaderName = "X-Request-ID"

	// DateLayout is the stored format of task due dates.
	DateLayout = "2006-01-02"
)
