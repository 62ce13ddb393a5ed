package middleware

import (
	"crypto/sha256"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const (
	CSRFFieldName  = "csrfmiddlewaretoken"
	CSRFCookieName = "csrftoken"
)

// CSRFKey turns a configured secret of any length into the 32 byte key the
// token cookie is authenticated with.
func CSRFKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// CSRF checks the token on every unsafe request. Requests that fail the check
// are handed to onFailure and the chain is aborted.
func CSRF(key []byte, secure bool, onFailure gin.HandlerFunc) gin.HandlerFunc {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.CookieName(CSRFCookieName),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})),
	)

	return func(c *gin.Context) {
		req := c.Request
		if req.TLS == nil && req.Header.Get("X-Forwarded-Proto") != "https" {
			req = csrf.PlaintextHTTPRequest(req)
		}

		passed := false
		protect(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, req)

		if !passed {
			onFailure(c)
			c.Abort()
		}
	}
}

// CSRFField renders the hidden token input for forms. It is empty when CSRF
// protection is off.
func CSRFField(c *gin.Context) template.HTML {
	return csrf.TemplateField(c.Request)
}
