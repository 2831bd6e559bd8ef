package middleware

type contextKey string

const (
	userIDKey contextKey = "userID"
	userKey   contextKey = "user"
	prefKey   contextKey = "preference"
	LangKey   contextKey = "lang"
	CsrfKey   contextKey = "csrf_token"
)
