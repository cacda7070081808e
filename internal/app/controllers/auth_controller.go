package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/meric/studentbase/internal/app/models"
	"github.com/meric/studentbase/internal/app/models/dto"
	"github.com/meric/studentbase/internal/app/services"
	"github.com/meric/studentbase/internal/middleware"
	"github.com/meric/studentbase/internal/pkg/apperrors"
)

// AuthController handles registration, login and profile endpoints
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// RegisterForm handles form-encoded registration. The role is not part of
// the form; new users get the default role.
// @Summary Register (form)
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /register [post]
func (ac *AuthController) RegisterForm(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if _, err := ac.authService.Register(c.Request.Context(), username, email, password, models.RoleDefault); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "registered"},
		Timestamp: time.Now(),
	})
}

// RegisterAPI handles structured registration. Unlike the form path the
// role is required and must name a known role exactly.
// @Summary Register (JSON)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/register [post]
func (ac *AuthController) RegisterAPI(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.FormatBindingError(err)))
		return
	}

	if !models.IsValidRole(req.Role) {
		middleware.HandleAPIError(c, apperrors.ErrInvalidRole)
		return
	}

	if _, err := ac.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password, models.Role(req.Role)); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "registered"},
		Timestamp: time.Now(),
	})
}

// LoginForm handles form-encoded login.
// @Summary Login (form)
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /login [post]
func (ac *AuthController) LoginForm(c *gin.Context) {
	ac.login(c, c.PostForm("email"), c.PostForm("password"))
}

// LoginAPI handles structured login.
// @Summary Login (JSON)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/login [post]
func (ac *AuthController) LoginAPI(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.FormatBindingError(err)))
		return
	}
	ac.login(c, req.Email, req.Password)
}

// login issues the token and sets both carriers: the response body and the
// cookie. Subsequent requests may use either.
func (ac *AuthController) login(c *gin.Context, email, password string) {
	token, expiresIn, _, err := ac.authService.Login(c.Request.Context(), email, password)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.SetCookie(middleware.AccessTokenCookie, token, expiresIn, "/", "", false, true)
	c.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		Timestamp: time.Now(),
	})
}

// Logout clears the cookie carrier. Tokens themselves are not revocable;
// an already-issued token stays valid until it expires.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /logout [get]
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "logged out"},
		Timestamp: time.Now(),
	})
}

// Profile returns the authenticated caller's stored identity.
// @Summary Get own profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/profile [get]
func (ac *AuthController) Profile(c *gin.Context) {
	sub, ok := middleware.SubjectFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	user, err := ac.authService.Profile(c.Request.Context(), sub.UserID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ProfileResponse{
			ID:       user.ID,
			Username: user.Username,
			Role:     string(user.Role),
		},
		Timestamp: time.Now(),
	})
}
