package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect/internal/container"
	handlers "github.com/devconnect/devconnect/internal/interface/http"
	"github.com/devconnect/devconnect/internal/interface/middleware"
	"github.com/devconnect/devconnect/pkg/helpers"
)

// ProfileModule wires profile CRUD, experience/education entries and the
// Github repo proxy.
// Public: GET /api/profile, GET /api/profile/user/:user_id,
// GET /api/profile/github/:username
// Everything else requires a token.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	// Github proxy hits an external API, keep its limiter tighter than the rest
	githubLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/profile", m.Handler.List)
	rg.GET("/profile/user/:user_id", m.Handler.ByUser)
	rg.GET("/profile/github/:username", githubLimiter, m.Handler.GithubRepos)

	auth := rg.Group("/profile")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("", m.Handler.Upsert)
		auth.DELETE("", m.Handler.DeleteAccount)
		auth.PUT("/experience", m.Handler.AddExperience)
		auth.DELETE("/experience/:exp_id", m.Handler.RemoveExperience)
		auth.PUT("/education", m.Handler.AddEducation)
		auth.DELETE("/education/:edu_id", m.Handler.RemoveEducation)
		// Profile search via Elasticsearch
		auth.GET("/search", m.Handler.Search)
	}
}
