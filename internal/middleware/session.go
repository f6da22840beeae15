package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xyzlearns/ShopEase1/internal/auth"
	"github.com/xyzlearns/ShopEase1/internal/store"
)

// SessionHeader carries the anonymous cart id in both directions.
const SessionHeader = "X-Session-Id"

const sessionKey = "sessionID"

// UserSession is the cart session of a signed-in account.
func UserSession(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

// CartSession picks the cart for the request. A signed-in shopper uses
// user:<id>, and any anonymous cart named in X-Session-Id is merged into it.
// Anonymous shoppers use X-Session-Id, and get a fresh anon-<uuid> when the
// header is missing. The chosen id is echoed in the response header.
//
// An invalid bearer token is ignored here; routes that need an account put
// RequireAuth in front.
func CartSession(svc *auth.Service, carts store.Carts, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimed := strings.TrimSpace(c.GetHeader(SessionHeader))

		user, ok := CurrentUser(c)
		if !ok {
			if token := bearerToken(c); token != "" {
				if u, err := svc.Resolve(c.Request.Context(), token); err == nil {
					user, ok = u, true
					c.Set(userKey, u)
				}
			}
		}

		var sessionID string
		switch {
		case ok:
			sessionID = UserSession(user.ID)
			if claimed != "" && claimed != sessionID && !strings.HasPrefix(claimed, "user:") {
				if err := store.MergeCarts(c.Request.Context(), carts, claimed, sessionID); err != nil {
					logger.Warn("Cart merge failed",
						zap.String("from", claimed), zap.String("to", sessionID), zap.Error(err))
				}
			}
		case claimed != "" && !strings.HasPrefix(claimed, "user:"):
			sessionID = claimed
		default:
			sessionID = "anon-" + uuid.New().String()
		}

		c.Set(sessionKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// SessionID returns the id chosen by CartSession.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
