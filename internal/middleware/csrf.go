package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"wealthwise/internal/utils"
)

const (
	CSRFKey        = "csrf_token"
	CSRFFormField  = "csrf_token"
	CSRFHeader     = "X-CSRF-Token"
	csrfCookieName = "wealthwise_csrf"
)

type CSRFOptions struct {
	Enabled bool
	Secure  bool
}

// CSRF is a double-submit cookie check: unsafe methods must echo the cookie
// value in the csrf_token field or the X-CSRF-Token header.
func CSRF(opts CSRFOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !opts.Enabled {
			c.Set(CSRFKey, "")
			c.Next()
			return
		}

		token, err := c.Cookie(csrfCookieName)
		if err != nil || token == "" {
			token, err = utils.NewToken(0)
			if err != nil {
				log.Printf("[csrf] token generation failed: %v", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(csrfCookieName, token, 0, "/", "", opts.Secure, true)
			if !safeMethod(c.Request.Method) {
				c.String(http.StatusBadRequest, "The CSRF token is missing.")
				c.Abort()
				return
			}
		}
		c.Set(CSRFKey, token)

		if safeMethod(c.Request.Method) {
			c.Next()
			return
		}
		sent := c.GetHeader(CSRFHeader)
		if sent == "" {
			sent = c.PostForm(CSRFFormField)
		}
		if subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
			log.Printf("[csrf] token mismatch %s %s", c.Request.Method, c.Request.URL.Path)
			c.String(http.StatusBadRequest, "The CSRF token is invalid.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func safeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
