package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devconnect/devconnect/internal/application"
	"github.com/devconnect/devconnect/internal/interface/middleware"
	"github.com/devconnect/devconnect/pkg/response"
	"github.com/devconnect/devconnect/pkg/validation"
)

// UserHandler serves registration, login and the current-user endpoint.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/users.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, validation.ToItems(err))
		return
	}
	token, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.ErrorsMsg(c, http.StatusBadRequest, "User already exists")
			return
		}
		h.Logger.WithError(err).Error("registration failed")
		response.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Login handles POST /api/auth.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, validation.ToItems(err))
		return
	}
	token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.ErrorsMsg(c, http.StatusBadRequest, "Invalid Credentials")
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Current handles GET /api/auth: the authenticated user without its
// password hash.
func (h *UserHandler) Current(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.Get(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Msg(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("current user lookup failed")
		response.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, u)
}
