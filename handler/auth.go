package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notevault/notevault/ecode"
	"github.com/notevault/notevault/logging/logger"
	"github.com/notevault/notevault/middleware"
	"github.com/notevault/notevault/net/cookie"
	"github.com/notevault/notevault/net/resp"
	"github.com/notevault/notevault/service"
)

type signupBody struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler exposes the account and session endpoints.
type AuthHandler struct {
	auth       *service.AuthService
	logger     *logger.Logger
	production bool
	domain     string
}

// NewAuthHandler creates an auth handler. The production flag controls the
// session cookie attributes.
func NewAuthHandler(auth *service.AuthService, log *logger.Logger, production bool, domain string) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		logger:     log,
		production: production,
		domain:     domain,
	}
}

// Signup registers a new account and starts a session for it.
func (h *AuthHandler) Signup(c *gin.Context) {
	var body signupBody
	if ex := bindJSON(c, &body); ex != nil {
		resp.Fail(c.Writer, ex)
		return
	}

	ctx := c.Request.Context()
	user, err := h.auth.Register(ctx, &service.RegisterInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	token, err := h.auth.IssueToken(ctx, user.ID.Hex())
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	cookie.SetSessionToken(c.Writer, token, h.production, h.domain)
	resp.WithStatusCode(c.Writer, http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
	})
}

// Login verifies credentials and starts a session. Clients always see the
// same message on failure regardless of which credential was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginBody
	if ex := bindJSON(c, &body); ex != nil {
		resp.Fail(c.Writer, ex)
		return
	}

	ctx := c.Request.Context()
	user, err := h.auth.Authenticate(ctx, &service.LoginInput{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		if ecode.KindOf(err) == ecode.KindAuthentication {
			h.logger.Info(ctx, "login rejected", "username", body.Username, "reason", err.Error())
			resp.Fail(c.Writer, resp.UnAuthorized("invalid username or password"))
			return
		}
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	token, err := h.auth.IssueToken(ctx, user.ID.Hex())
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	cookie.SetSessionToken(c.Writer, token, h.production, h.domain)
	resp.Success(c.Writer, gin.H{
		"success": true,
		"user":    user,
	})
}

// Logout clears the session cookie. Previously issued tokens stay valid
// until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearSessionToken(c.Writer, h.production)
	c.Status(http.StatusNoContent)
}

// CheckAuth returns the account bound to the current session.
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	account := middleware.GetCurrentAccount(c)
	if account == nil {
		resp.Fail(c.Writer, resp.UnAuthorized("no token provided"))
		return
	}

	resp.Success(c.Writer, gin.H{
		"message": "authorized user",
		"user":    account,
	})
}
