package v1

import (
	"net/http"
	"time"

	"job-portal-backend/internal/delivery/http/middleware"
	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC       domain.AuthUsecase
	tokenTTL     time.Duration
	secureCookie bool
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, loginLimit gin.HandlerFunc, tokenTTL time.Duration, secureCookie bool) {
	handler := &AuthHandler{
		authUC:       authUC,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", loginLimit, handler.Login)
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/logout", handler.Logout)
	}

	protected.GET("/auth/me", handler.Me)
}

// Login godoc
// @Summary      User Login
// @Description  Authenticate with email and password and receive a bearer token. The token is also set as the auth_token cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      domain.LoginRequest  true  "Login Credentials"
// @Success      200          {object}  map[string]interface{}
// @Failure      400          {object}  response.ErrorBody
// @Failure      401          {object}  response.ErrorBody
// @Failure      429          {object}  response.ErrorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	token, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, token.Token, int(h.tokenTTL.Seconds()), "/", "", h.secureCookie, true)

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token":     token.Token,
		"type":      token.Type,
		"id":        token.ID,
		"username":  token.Username,
		"email":     token.Email,
		"roles":     token.Roles,
		"firstName": token.FirstName,
		"lastName":  token.LastName,
		"role":      token.Role,
	})
}

// Register godoc
// @Summary      User Registration
// @Description  Register a new user. Role defaults to JOB_SEEKER.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      domain.RegisterRequest  true  "Registration Details"
// @Success      201       {object}  map[string]interface{}
// @Failure      400       {object}  response.ErrorBody
// @Failure      409       {object}  response.ErrorBody
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", gin.H{"user": user})
}

// Logout godoc
// @Summary      User Logout
// @Description  Clears the auth_token cookie. Bearer tokens are discarded client-side.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// Me godoc
// @Summary      Current User
// @Description  Get the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  response.ErrorBody
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user retrieved successfully", gin.H{"user": user})
}
