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

// PostHandler serves the post resource: CRUD plus likes and comments.
type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type postRequest struct {
	Text string `json:"text" binding:"required"`
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, validation.ToItems(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Create(c.Request.Context(), uid, req.Text)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Msg(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).Error("post creation failed")
		response.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, p)
}

// List handles GET /api/posts, newest first.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("post list failed")
		response.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get handles GET /api/posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.postError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/posts/:id; only the owner may delete.
func (h *PostHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		h.postError(c, err)
		return
	}
	response.Msg(c, http.StatusOK, "Post removed")
}

// Like handles PUT /api/posts/like/:id and returns the updated likes list.
func (h *PostHandler) Like(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Like(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		h.postError(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Likes)
}

// Unlike handles PUT /api/posts/unlike/:id.
func (h *PostHandler) Unlike(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Unlike(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		h.postError(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Likes)
}

// AddComment handles POST /api/posts/comment/:id and returns the updated
// comments list.
func (h *PostHandler) AddComment(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, validation.ToItems(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.AddComment(c.Request.Context(), c.Param("id"), uid, req.Text)
	if err != nil {
		h.postError(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Comments)
}

// RemoveComment handles DELETE /api/posts/comment/:id/:comment_id.
func (h *PostHandler) RemoveComment(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.RemoveComment(c.Request.Context(), c.Param("id"), c.Param("comment_id"), uid)
	if err != nil {
		h.postError(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Comments)
}

func (h *PostHandler) postError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrPostNotFound):
		response.Msg(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, application.ErrCommentNotFound):
		response.Msg(c, http.StatusNotFound, "Comment does not exist")
	case errors.Is(err, application.ErrNotPostOwner):
		response.Msg(c, http.StatusUnauthorized, "User not authorized")
	case errors.Is(err, application.ErrAlreadyLiked):
		response.Msg(c, http.StatusBadRequest, "Post already liked")
	case errors.Is(err, application.ErrNotLiked):
		response.Msg(c, http.StatusBadRequest, "Post has not yet been liked")
	case errors.Is(err, application.ErrUserNotFound):
		response.Msg(c, http.StatusNotFound, "User not found")
	default:
		h.Logger.WithError(err).Error("post operation failed")
		response.ServerError(c)
	}
}
