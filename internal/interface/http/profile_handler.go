package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devconnect/devconnect/internal/application"
	"github.com/devconnect/devconnect/internal/domain/entity"
	"github.com/devconnect/devconnect/internal/interface/middleware"
	"github.com/devconnect/devconnect/pkg/response"
	"github.com/devconnect/devconnect/pkg/validation"
)

// ProfileHandler serves the profile aggregate: upsert, lookups, the
// experience/education sub-collections, account deletion, github repos and
// profile search.
type ProfileHandler struct {
	Svc    *application.ProfileService
	Github *application.GithubService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, github *application.GithubService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Github: github, Logger: logger}
}

type upsertProfileRequest struct {
	Status         string `json:"status" binding:"required"`
	Skills         string `json:"skills" binding:"required"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
	Facebook       string `json:"facebook"`
}

type experienceRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from" binding:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type educationRequest struct {
	School       string     `json:"school" binding:"required"`
	Degree       string     `json:"degree" binding:"required"`
	FieldOfStudy string     `json:"fieldofstudy" binding:"required"`
	From         time.Time  `json:"from" binding:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// Upsert handles POST /api/profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, validation.ToItems(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Upsert(c.Request.Context(), uid, application.UpsertInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
		Facebook:       req.Facebook,
	})
	if err != nil {
		h.Logger.WithError(err).Error("profile upsert failed")
		response.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Me(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrProfileNotFound) {
			response.Msg(c, http.StatusBadRequest, "There is no profile for this user")
			return
		}
		h.Logger.WithError(err).Error("own profile lookup failed")
		response.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, p)
}

// List handles GET /api/profile.
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("profile list failed")
		response.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// ByUser handles GET /api/profile/user/:user_id.
func (h *ProfileHandler) ByUser(c *gin.Context) {
	p, err := h.Svc.ByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, application.ErrProfileNotFound) {
			response.Msg(c, http.StatusNotFound, "Profile not found")
			return
		}
		h.Logger.WithError(err).Error("profile lookup failed")
		response.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteAccount handles DELETE /api/profile: posts, profile and user are
// removed in that order.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteAccount(c.Request.Context(), uid); err != nil {
		h.Logger.WithError(err).Error("account deletion failed")
		response.ServerError(c)
		return
	}
	response.Msg(c, http.StatusOK, "User deleted")
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, validation.ToItems(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.AddExperience(c.Request.Context(), uid, entity.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		h.entryError(c, err, "experience")
		return
	}
	c.JSON(http.StatusOK, p)
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, validation.ToItems(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.AddEducation(c.Request.Context(), uid, entity.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		h.entryError(c, err, "education")
		return
	}
	c.JSON(http.StatusOK, p)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id.
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.RemoveExperience(c.Request.Context(), uid, c.Param("exp_id"))
	if err != nil {
		h.entryError(c, err, "experience")
		return
	}
	c.JSON(http.StatusOK, p)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.RemoveEducation(c.Request.Context(), uid, c.Param("edu_id"))
	if err != nil {
		h.entryError(c, err, "education")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) entryError(c *gin.Context, err error, kind string) {
	switch {
	case errors.Is(err, application.ErrProfileNotFound):
		response.Msg(c, http.StatusNotFound, "There is no profile for this user")
	case errors.Is(err, application.ErrCurrentEntry):
		response.ErrorsMsg(c, http.StatusBadRequest, "A current "+kind+" entry already exists, clear it before adding a new current one")
	case errors.Is(err, application.ErrEntryNotFound):
		response.Msg(c, http.StatusNotFound, "Entry not found")
	default:
		h.Logger.WithError(err).Error("profile " + kind + " update failed")
		response.ServerError(c)
	}
}

// GithubRepos handles GET /api/profile/github/:username.
func (h *ProfileHandler) GithubRepos(c *gin.Context) {
	repos, err := h.Github.Repos(c.Request.Context(), c.Param("username"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrGithubUserNotFound):
			response.Msg(c, http.StatusNotFound, "No Github profile found")
		case errors.Is(err, application.ErrGatewayTimeout):
			response.Msg(c, http.StatusGatewayTimeout, "Github request timed out")
		case errors.Is(err, application.ErrGateway):
			response.Msg(c, http.StatusBadGateway, "Github is unavailable")
		default:
			h.Logger.WithError(err).Error("github repos fetch failed")
			response.ServerError(c)
		}
		return
	}
	c.JSON(http.StatusOK, repos)
}

// Search handles GET /api/profile/search?q=...&size=...
func (h *ProfileHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Msg(c, http.StatusBadRequest, "Query is required")
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("profile search failed")
		response.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, hits)
}
