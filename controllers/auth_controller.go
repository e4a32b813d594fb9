package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sneaker-storefront/auth"
	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/logger"
)

type AuthController struct {
	store database.Store
	log   *zap.Logger
}

func NewAuthController(store database.Store, log *zap.Logger) *AuthController {
	return &AuthController{store: store, log: log}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) directory(c *gin.Context) *auth.Directory {
	return auth.NewDirectory(sessionStore(c, ac.store), logger.FromContext(c, ac.log))
}

// Register handles POST /auth/register. Field checks happen in the directory
// so that a bad form and a bad stored record fail the same way.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := ac.directory(c).Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": session})
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := ac.directory(c).Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": session})
}

// Logout handles POST /auth/logout.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.directory(c).Logout(c.Request.Context()); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me handles GET /auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	session, ok, err := ac.directory(c).Current(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": session})
}
