package web

import "net/http"

// tokenCookieName is the carrier slot for the session token. The name
// predates this codebase, clients depend on it.
const tokenCookieName = "jwt"

// attachTokenCookie places the session token on the response.
//
// HttpOnly is a hard requirement: client-side scripts must not be able
// to read the token. Secure comes from configuration so local
// development over plain http keeps working.
func (s *Server) attachTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// tokenFromCookie reads the session token from an inbound request.
// Absence is not an error, it's the anonymous state.
func tokenFromCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(tokenCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}

	return c.Value, true
}
