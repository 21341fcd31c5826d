package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect/internal/application"
	"github.com/devconnect/devconnect/internal/infrastructure/memory"
	"github.com/devconnect/devconnect/internal/interface/middleware"
	"github.com/devconnect/devconnect/pkg/helpers"
	"github.com/devconnect/devconnect/pkg/validation"
)

type testAPI struct {
	engine *gin.Engine
	jwt    *helpers.JWTManager
}

// newTestAPI wires the handlers against in-memory repositories with the
// same routes the server registers, minus rate limiting.
func newTestAPI(t *testing.T, githubBaseURL string) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := memory.NewUserRepository()
	profiles := memory.NewProfileRepository()
	posts := memory.NewPostRepository()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	userSvc := application.NewUserService(users, jwt, nil, logger, false)
	profileSvc := application.NewProfileService(profiles, users, posts, logger, nil, "")
	postSvc := application.NewPostService(posts, users, logger)
	githubSvc := application.NewGithubService(githubBaseURL, time.Second, nil, 0, logger)

	userH := NewUserHandler(userSvc, logger)
	profileH := NewProfileHandler(profileSvc, githubSvc, logger)
	postH := NewPostHandler(postSvc, logger)

	r := gin.New()
	api := r.Group("/api")

	api.POST("/users", userH.Register)
	api.POST("/auth", userH.Login)
	api.GET("/profile", profileH.List)
	api.GET("/profile/user/:user_id", profileH.ByUser)
	api.GET("/profile/github/:username", profileH.GithubRepos)

	auth := api.Group("/")
	auth.Use(middleware.Auth(jwt))
	{
		auth.GET("/auth", userH.Current)
		auth.GET("/profile/me", profileH.Me)
		auth.POST("/profile", profileH.Upsert)
		auth.DELETE("/profile", profileH.DeleteAccount)
		auth.PUT("/profile/experience", profileH.AddExperience)
		auth.DELETE("/profile/experience/:exp_id", profileH.RemoveExperience)
		auth.PUT("/profile/education", profileH.AddEducation)
		auth.DELETE("/profile/education/:edu_id", profileH.RemoveEducation)
		auth.POST("/posts", postH.Create)
		auth.GET("/posts", postH.List)
		auth.GET("/posts/:id", postH.Get)
		auth.DELETE("/posts/:id", postH.Delete)
		auth.PUT("/posts/like/:id", postH.Like)
		auth.PUT("/posts/unlike/:id", postH.Unlike)
		auth.POST("/posts/comment/:id", postH.AddComment)
		auth.DELETE("/posts/comment/:id/:comment_id", postH.RemoveComment)
	}

	return &testAPI{engine: r, jwt: jwt}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (a *testAPI) register(t *testing.T, name, email string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/users", "", gin.H{
		"name": name, "email": email, "password": "s3cret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func errorMsgs(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var body struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	out := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		out = append(out, e.Msg)
	}
	return out
}

func TestRegisterAndCurrentUser(t *testing.T) {
	api := newTestAPI(t, "")

	token := api.register(t, "Ada", "ada@example.com")

	rec := api.do(t, http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Ada", body["name"])
	assert.Equal(t, "ada@example.com", body["email"])
	assert.NotContains(t, body, "password")
	assert.Contains(t, body["avatar"], "gravatar.com")
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, http.MethodPost, "/api/users", "", gin.H{
		"name": "Ada", "email": "not-an-email", "password": "123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msgs := errorMsgs(t, rec)
	assert.Contains(t, msgs, "Please include a valid email")
	assert.Contains(t, msgs, "Please enter a password with 6 or more characters")
}

func TestRegisterDuplicateEmailBody(t *testing.T) {
	api := newTestAPI(t, "")
	api.register(t, "Ada", "ada@example.com")

	rec := api.do(t, http.MethodPost, "/api/users", "", gin.H{
		"name": "Other", "email": "ada@example.com", "password": "s3cret123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"User already exists"}, errorMsgs(t, rec))
}

func TestLoginInvalidCredentialsBody(t *testing.T) {
	api := newTestAPI(t, "")
	api.register(t, "Ada", "ada@example.com")

	rec := api.do(t, http.MethodPost, "/api/auth", "", gin.H{
		"email": "ada@example.com", "password": "wrongpass",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Invalid Credentials"}, errorMsgs(t, rec))

	rec = api.do(t, http.MethodPost, "/api/auth", "", gin.H{
		"email": "ada@example.com", "password": "s3cret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["token"])
}

func TestAuthMiddlewareBodies(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, http.MethodGet, "/api/auth", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token auth denied", decodeBody(t, rec)["msg"])

	rec = api.do(t, http.MethodGet, "/api/auth", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", decodeBody(t, rec)["msg"])
}

func TestProfileUpsertAndLookup(t *testing.T) {
	api := newTestAPI(t, "")
	token := api.register(t, "Ada", "ada@example.com")

	rec := api.do(t, http.MethodGet, "/api/profile/me", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "There is no profile for this user", decodeBody(t, rec)["msg"])

	rec = api.do(t, http.MethodPost, "/api/profile", token, gin.H{
		"status": "Developer", "skills": "go, rust", "company": "ACME",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "Developer", body["status"])
	assert.Equal(t, []any{"go", "rust"}, body["skills"])

	rec = api.do(t, http.MethodGet, "/api/profile/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	userID, _ := decodeBody(t, rec)["user"].(string)
	require.NotEmpty(t, userID)
	rec = api.do(t, http.MethodGet, "/api/profile/user/"+userID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/profile/user/64f1c0ffee0000000000abcd", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Profile not found", decodeBody(t, rec)["msg"])
}

func TestProfileUpsertValidation(t *testing.T) {
	api := newTestAPI(t, "")
	token := api.register(t, "Ada", "ada@example.com")

	rec := api.do(t, http.MethodPost, "/api/profile", token, gin.H{"company": "ACME"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msgs := errorMsgs(t, rec)
	assert.Contains(t, msgs, "Status is required")
	assert.Contains(t, msgs, "Skills is required")
}

func TestExperienceEndpoints(t *testing.T) {
	api := newTestAPI(t, "")
	token := api.register(t, "Ada", "ada@example.com")
	api.do(t, http.MethodPost, "/api/profile", token, gin.H{"status": "Developer", "skills": "go"})

	rec := api.do(t, http.MethodPut, "/api/profile/experience", token, gin.H{
		"title": "Engineer", "company": "ACME", "from": "2020-01-01T00:00:00Z", "current": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Second current entry is rejected
	rec = api.do(t, http.MethodPut, "/api/profile/experience", token, gin.H{
		"title": "Lead", "company": "Initech", "from": "2022-01-01T00:00:00Z", "current": true,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msgs := errorMsgs(t, rec)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "current experience entry already exists")

	rec = api.do(t, http.MethodDelete, "/api/profile/experience/unknown-entry", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Entry not found", decodeBody(t, rec)["msg"])
}

func TestDeleteAccount(t *testing.T) {
	api := newTestAPI(t, "")
	token := api.register(t, "Ada", "ada@example.com")
	api.do(t, http.MethodPost, "/api/profile", token, gin.H{"status": "Developer", "skills": "go"})

	rec := api.do(t, http.MethodDelete, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted", decodeBody(t, rec)["msg"])

	// Token still verifies but the user record is gone
	rec = api.do(t, http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeBody(t, rec)["msg"])
}

func TestPostLifecycle(t *testing.T) {
	api := newTestAPI(t, "")
	adaToken := api.register(t, "Ada", "ada@example.com")
	graceToken := api.register(t, "Grace", "grace@example.com")

	rec := api.do(t, http.MethodPost, "/api/posts", adaToken, gin.H{"text": "hello world"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	postID, _ := body["id"].(string)
	require.NotEmpty(t, postID)
	assert.Equal(t, "Ada", body["name"])

	// Non-owner delete is rejected
	rec = api.do(t, http.MethodDelete, "/api/posts/"+postID, graceToken, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not authorized", decodeBody(t, rec)["msg"])

	// Like, double like, unlike
	rec = api.do(t, http.MethodPut, "/api/posts/like/"+postID, graceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/posts/like/"+postID, graceToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Post already liked", decodeBody(t, rec)["msg"])

	rec = api.do(t, http.MethodPut, "/api/posts/unlike/"+postID, graceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Comment and remove it
	rec = api.do(t, http.MethodPost, "/api/posts/comment/"+postID, graceToken, gin.H{"text": "nice"})
	require.Equal(t, http.StatusOK, rec.Code)
	var comments []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	commentID, _ := comments[0]["id"].(string)
	require.NotEmpty(t, commentID)

	rec = api.do(t, http.MethodDelete, "/api/posts/comment/"+postID+"/"+commentID, graceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Owner delete succeeds
	rec = api.do(t, http.MethodDelete, "/api/posts/"+postID, adaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Post removed", decodeBody(t, rec)["msg"])

	rec = api.do(t, http.MethodGet, "/api/posts/"+postID, adaToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", decodeBody(t, rec)["msg"])
}

func TestGithubReposEndpoint(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/octocat/repos" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"name":"hello-world","html_url":"https://github.com/octocat/hello-world"}]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	api := newTestAPI(t, upstream.URL)

	rec := api.do(t, http.MethodGet, "/api/profile/github/octocat", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var repos []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &repos))
	require.Len(t, repos, 1)
	assert.Equal(t, "hello-world", repos[0]["name"])

	rec = api.do(t, http.MethodGet, "/api/profile/github/no-such-user", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No Github profile found", decodeBody(t, rec)["msg"])
}
