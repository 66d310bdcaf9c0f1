package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tasktracker/internal/auth"
	"tasktracker/internal/model"
	"tasktracker/internal/repository"
	"tasktracker/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	UserIDKey = "userID"
	UserKey   = "user"
	ClaimsKey = "sessionClaims"

	LoginPath = "/login/"
	HomePath  = "/"
)

type UserLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// SessionCookie is the cookie that carries the signed session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

func NewSessionCookie(secure bool) SessionCookie {
	return SessionCookie{Name: "sessionid", Secure: secure}
}

func (sc SessionCookie) Set(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, token, int(ttl.Seconds()), "/", "", sc.Secure, true)
}

func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

func (sc SessionCookie) token(c *gin.Context) (string, bool) {
	if v, err := c.Cookie(sc.Name); err == nil && v != "" {
		return v, true
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), false
	}
	return "", false
}

// SessionAuth resolves the current user from the session cookie or a Bearer
// token. Requests without a valid live session continue anonymously; a stale
// cookie is dropped on the way out.
func SessionAuth(tokens *auth.TokenManager, store session.Store, users UserLoader, cookie SessionCookie, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, fromCookie := cookie.token(c)
		if raw == "" {
			c.Next()
			return
		}

		anonymous := func() {
			if fromCookie {
				cookie.Clear(c)
			}
			c.Next()
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			anonymous()
			return
		}

		ctx := c.Request.Context()
		active, err := store.Active(ctx, claims.SessionID)
		if err != nil {
			log.Error("session lookup failed", zap.String("sid", claims.SessionID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session store unavailable"})
			return
		}
		if !active {
			anonymous()
			return
		}

		user, err := users.GetByID(ctx, claims.UserID)
		if errors.Is(err, repository.ErrUserNotFound) {
			anonymous()
			return
		}
		if err != nil {
			log.Error("loading session user failed", zap.Stringer("user_id", claims.UserID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// CurrentUser returns the authenticated user of this request, if any.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

func SessionClaims(c *gin.Context) (auth.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := v.(auth.Claims)
	return claims, ok
}

// LoginRequired redirects anonymous requests to the login page, keeping the
// original destination in ?next=.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// AnonymousOnly sends already authenticated users home.
func AnonymousOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Redirect(http.StatusFound, HomePath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SafeNext returns next when it is a local absolute path, otherwise home.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return HomePath
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return HomePath
	}
	return next
}
