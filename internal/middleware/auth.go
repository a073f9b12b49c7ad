package middleware

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wealthwise/internal/services"
)

const UserIDKey = "user_id"

// SessionCookie describes the cookie carrying the session JWT.
type SessionCookie struct {
	Name     string
	Secure   bool
	HTTPOnly bool
	MaxAge   int // seconds
}

func (s SessionCookie) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, token, s.MaxAge, "/", "", s.Secure, s.HTTPOnly)
}

func (s SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, "", -1, "/", "", s.Secure, s.HTTPOnly)
}

// AuthRequired sends anonymous browsers to /login. A valid session puts the
// user id into the context under UserIDKey.
func AuthRequired(auth services.AuthService, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		claims, err := auth.ParseSession(token)
		if err != nil {
			log.Printf("[auth][session] rejected: %v", err)
			cookie.Clear(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// RequireOwner compares the int path parameter with the session user.
func RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param(param))
		if err != nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		uid, ok := UserID(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if uid != id {
			log.Printf("[auth][owner] user_id=%d denied access to %s", uid, c.Request.URL.Path)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// UserID tolerates the integer types a context value may arrive as.
func UserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}
