package router

import (
	"github.com/devconnect/devconnect/internal/application"
	"github.com/devconnect/devconnect/internal/container"
	"github.com/devconnect/devconnect/internal/domain/repository"
	"github.com/devconnect/devconnect/internal/infrastructure/mongodb"
	handlers "github.com/devconnect/devconnect/internal/interface/http"
	"github.com/devconnect/devconnect/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repository.UserRepository
	Service *application.UserService
	Handler *handlers.UserHandler
}

type ProfileModuleDeps struct {
	Repo    repository.ProfileRepository
	Service *application.ProfileService
	Github  *application.GithubService
	Handler *handlers.ProfileHandler
}

type PostModuleDeps struct {
	Repo    repository.PostRepository
	Service *application.PostService
	Handler *handlers.PostHandler
}

func buildUserDeps(users repository.UserRepository) UserModuleDeps {
	cfg := container.GetConfig()

	service := application.NewUserService(
		users,
		container.GetJWT(),
		container.GetRabbitPub(),
		container.GetLogger(),
		cfg.MailSendEnabled,
	)

	handler := handlers.NewUserHandler(service, container.GetLogger())

	return UserModuleDeps{Repo: users, Service: service, Handler: handler}
}

func buildProfileDeps(profiles repository.ProfileRepository, users repository.UserRepository, posts repository.PostRepository) ProfileModuleDeps {
	cfg := container.GetConfig()

	service := application.NewProfileService(
		profiles,
		users,
		posts,
		container.GetLogger(),
		container.GetES(),
		cfg.ESProfilesIndex,
	)

	github := application.NewGithubService(
		cfg.GithubAPIURL,
		cfg.GithubTimeout,
		container.GetRedis(),
		cfg.GithubCacheTTL,
		container.GetLogger(),
	)

	handler := handlers.NewProfileHandler(service, github, container.GetLogger())

	return ProfileModuleDeps{Repo: profiles, Service: service, Github: github, Handler: handler}
}

func buildPostDeps(posts repository.PostRepository, users repository.UserRepository) PostModuleDeps {
	service := application.NewPostService(posts, users, container.GetLogger())
	handler := handlers.NewPostHandler(service, container.GetLogger())

	return PostModuleDeps{Repo: posts, Service: service, Handler: handler}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	db := container.GetMongo()
	users := mongodb.NewUserRepository(db)
	profiles := mongodb.NewProfileRepository(db)
	posts := mongodb.NewPostRepository(db)

	userDeps := buildUserDeps(users)
	profileDeps := buildProfileDeps(profiles, users, posts)
	postDeps := buildPostDeps(posts, users)

	jwt := container.GetJWT()
	r.Add(modules.NewUserModule(userDeps.Handler, jwt))
	r.Add(modules.NewProfileModule(profileDeps.Handler, jwt))
	r.Add(modules.NewPostModule(postDeps.Handler, jwt))

	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
