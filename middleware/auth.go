package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/notevault/notevault/ctxutil"
	"github.com/notevault/notevault/data/repository"
	"github.com/notevault/notevault/net/cookie"
	"github.com/notevault/notevault/net/resp"
	"github.com/notevault/notevault/service"
)

const accountContextKey = "account"

// ProtectRoute rejects requests that do not carry a valid session cookie.
// On success the resolved account is stored on the request context for
// downstream handlers.
func ProtectRoute(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := cookie.GetSessionToken(c.Request)
		if err != nil {
			resp.Fail(c.Writer, resp.UnAuthorized("no token provided"))
			c.Abort()
			return
		}

		account, err := auth.VerifyToken(c.Request.Context(), token)
		if err != nil {
			resp.Fail(c.Writer, resp.FromError(err))
			c.Abort()
			return
		}

		c.Set(accountContextKey, account)
		ctx := ctxutil.SetAccount(c.Request.Context(), account)
		ctx = ctxutil.SetUserID(ctx, account.ID.Hex())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCurrentAccount returns the account resolved by ProtectRoute, or nil
// when the route is unprotected.
func GetCurrentAccount(c *gin.Context) *repository.User {
	val, ok := c.Get(accountContextKey)
	if !ok {
		return nil
	}
	account, ok := val.(*repository.User)
	if !ok {
		return nil
	}
	return account
}

// GetCurrentAccountID returns the id of the account resolved by
// ProtectRoute, or the empty string.
func GetCurrentAccountID(c *gin.Context) string {
	if account := GetCurrentAccount(c); account != nil {
		return account.ID.Hex()
	}
	return ""
}
