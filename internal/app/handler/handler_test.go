package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"designer/internal/app/config"
	"designer/internal/app/ds"
	"designer/internal/app/dto"
	"designer/internal/app/middleware"
	"designer/internal/app/repository"
	"designer/internal/app/session"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "foobar"

// ---- fakes ----

type memoryBlacklist struct {
	tokens map[string]time.Duration
}

func (b *memoryBlacklist) WriteJWTToBlacklist(_ context.Context, jwtStr string, ttl time.Duration) error {
	b.tokens[jwtStr] = ttl
	return nil
}

func (b *memoryBlacklist) IsJWTBlacklisted(_ context.Context, jwtStr string) (bool, error) {
	_, ok := b.tokens[jwtStr]
	return ok, nil
}

type fakeSnapshots struct {
	uploaded map[uint][]byte
	err      error
}

func (s *fakeSnapshots) UploadSnapshot(_ context.Context, projectID uint, content []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploaded[projectID] = content
	return fmt.Sprintf("http://minio.local/projects/project_%d.json", projectID), nil
}

// ---- helpers ----

type testEnv struct {
	router    *gin.Engine
	repo      *repository.Repository
	handler   *Handler
	blacklist *memoryBlacklist
	cfg       *config.Config
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Token:      testSecret,
			ExpiresIn:  2 * time.Hour,
			CookieName: "token",
			Issuer:     "designer-test",
		},
	}
	sessions := session.NewManager(cfg.JWT)
	blacklist := &memoryBlacklist{tokens: map[string]time.Duration{}}

	h := NewHandler(repo, sessions, cfg)
	h.Revoker = blacklist

	router := gin.New()
	h.RegisterRoutes(router, middleware.NewAuthMiddleware(sessions, blacklist, cfg.JWT.CookieName))

	return &testEnv{router: router, repo: repo, handler: h, blacklist: blacklist, cfg: cfg}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) dto.StatusResponse {
	t.Helper()
	var resp dto.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func tokenCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("token cookie not set")
	return nil
}

// signupAndSignin регистрирует пользователя и возвращает куку сессии
func (e *testEnv) signupAndSignin(t *testing.T, login string) *http.Cookie {
	t.Helper()
	creds := gin.H{"login": login, "password": "p@ss"}

	rec := e.do(t, http.MethodPost, "/signup", creds, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decodeStatus(t, rec).Success)

	rec = e.do(t, http.MethodPost, "/signin", creds, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decodeStatus(t, rec).Success)

	return tokenCookie(t, rec)
}

type projectJSON struct {
	ID                uint      `json:"id"`
	UserID            *uint     `json:"userId"`
	Name              string    `json:"name"`
	ModifyingDatetime time.Time `json:"modifyingDatetime"`
	Content           string    `json:"content"`
}

func (e *testEnv) listProjects(t *testing.T, cookie *http.Cookie) []projectJSON {
	t.Helper()
	rec := e.do(t, http.MethodGet, "/projects", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Code     int           `json:"code"`
		Projects []projectJSON `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code)
	return resp.Projects
}

func countUsers(t *testing.T, e *testEnv) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.repo.DB().Model(&ds.User{}).Count(&n).Error)
	return n
}

// ---- auth ----

func TestSignupAndSignin(t *testing.T) {
	e := setupEnv(t)

	cookie := e.signupAndSignin(t, "designer_1")

	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 7200, cookie.MaxAge)
	assert.NotEmpty(t, cookie.Value)

	assert.Empty(t, e.listProjects(t, cookie))
}

func TestSignupDuplicateLogin(t *testing.T) {
	e := setupEnv(t)
	e.signupAndSignin(t, "designer_1")
	before := countUsers(t, e)

	rec := e.do(t, http.MethodPost, "/signup", gin.H{"login": "designer_1", "password": "other"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeStatus(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.MessageUserExists, resp.Message)
	assert.Equal(t, before, countUsers(t, e))
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    gin.H
		message string
	}{
		{"too short", gin.H{"login": "ab", "password": "x"}, dto.MessageBadLogin},
		{"bad chars", gin.H{"login": "bad-login!", "password": "x"}, dto.MessageBadLogin},
		{"cyrillic", gin.H{"login": "логин", "password": "x"}, dto.MessageBadLogin},
		{"missing password", gin.H{"login": "designer"}, dto.MessageIncompleteData},
		{"missing login", gin.H{"password": "x"}, dto.MessageIncompleteData},
		{"missing both", gin.H{}, dto.MessageIncompleteData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupEnv(t)

			rec := e.do(t, http.MethodPost, "/signup", tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeStatus(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
			assert.Zero(t, countUsers(t, e))
		})
	}
}

func TestSigninFailures(t *testing.T) {
	e := setupEnv(t)
	e.signupAndSignin(t, "designer_1")

	wrongPassword := e.do(t, http.MethodPost, "/signin", gin.H{"login": "designer_1", "password": "nope"}, nil)
	unknownLogin := e.do(t, http.MethodPost, "/signin", gin.H{"login": "ghost", "password": "p@ss"}, nil)

	for _, rec := range []*httptest.ResponseRecorder{wrongPassword, unknownLogin} {
		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeStatus(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.MessageBadCredentials, resp.Message)
		assert.Empty(t, rec.Result().Cookies())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := setupEnv(t)

	rec := e.do(t, http.MethodGet, "/projects", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decodeStatus(t, rec).Success)

	rec = e.do(t, http.MethodGet, "/projects", nil, &http.Cookie{Name: "token", Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodPost, "/projects", gin.H{"name": "p"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	e := setupEnv(t)
	e.signupAndSignin(t, "designer_1")
	user, err := e.repo.GetUserByLogin("designer_1")
	require.NoError(t, err)

	expired := session.NewManager(config.JWTConfig{Token: testSecret, ExpiresIn: -time.Minute})
	token, err := expired.Issue(user.ID)
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/projects", nil, &http.Cookie{Name: "token", Value: token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerHeaderAccepted(t *testing.T) {
	e := setupEnv(t)
	cookie := e.signupAndSignin(t, "designer_1")

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignout(t *testing.T) {
	e := setupEnv(t)
	cookie := e.signupAndSignin(t, "designer_1")

	rec := e.do(t, http.MethodPost, "/signout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeStatus(t, rec).Success)
	assert.Contains(t, e.blacklist.tokens, cookie.Value)
	assert.True(t, e.blacklist.tokens[cookie.Value] > 0)

	cleared := tokenCookie(t, rec)
	assert.Empty(t, cleared.Value)

	rec = e.do(t, http.MethodGet, "/projects", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---- projects ----

func TestCreateAndListProjectKeepsContent(t *testing.T) {
	e := setupEnv(t)
	cookie := e.signupAndSignin(t, "designer_1")
	content := `{"walls":[[0,0],[3.2,0],[3.2,2.8]],"items":[{"module":5,"rot":90}],"title":"Гостиная \"A\""}`

	rec := e.do(t, http.MethodPost, "/projects", gin.H{"name": "Гостиная", "project": content}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeStatus(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, dto.MessageProjectCreated, resp.Message)

	projects := e.listProjects(t, cookie)
	require.Len(t, projects, 1)
	assert.Equal(t, "Гостиная", projects[0].Name)
	assert.Equal(t, content, projects[0].Content)
	assert.False(t, projects[0].ModifyingDatetime.IsZero())
}

func TestCreateProjectValidation(t *testing.T) {
	e := setupEnv(t)
	cookie := e.signupAndSignin(t, "designer_1")

	rec := e.do(t, http.MethodPost, "/projects", gin.H{"project": "{}"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.MessageIncompleteData, decodeStatus(t, rec).Message)

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	rec = e.do(t, http.MethodPost, "/projects", gin.H{"name": string(long)}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, e.listProjects(t, cookie))
}

func TestListProjectsOnlyOwn(t *testing.T) {
	e := setupEnv(t)
	alice := e.signupAndSignin(t, "alice")
	bob := e.signupAndSignin(t, "bob")

	e.do(t, http.MethodPost, "/projects", gin.H{"name": "a1", "project": "A"}, alice)
	e.do(t, http.MethodPost, "/projects", gin.H{"name": "b1", "project": "B"}, bob)
	e.do(t, http.MethodPost, "/projects", gin.H{"name": "a2", "project": "A"}, alice)

	names := []string{}
	for _, p := range e.listProjects(t, alice) {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"a1", "a2"}, names)
	assert.Len(t, e.listProjects(t, bob), 1)
}

func TestRenameProject(t *testing.T) {
	e := setupEnv(t)
	owner := e.signupAndSignin(t, "owner")
	intruder := e.signupAndSignin(t, "intruder")
	e.do(t, http.MethodPost, "/projects", gin.H{"name": "old", "project": "blob"}, owner)
	project := e.listProjects(t, owner)[0]
	path := fmt.Sprintf("/projects/%d", project.ID)

	rec := e.do(t, http.MethodPatch, path, gin.H{"name": "hacked"}, intruder)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeStatus(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.MessageNotOwner, resp.Message)
	assert.Equal(t, "old", e.listProjects(t, owner)[0].Name)

	rec = e.do(t, http.MethodPatch, path, gin.H{"name": "new"}, owner)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp = decodeStatus(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, dto.MessageProjectRenamed, resp.Message)

	renamed := e.listProjects(t, owner)[0]
	assert.Equal(t, "new", renamed.Name)
	assert.Equal(t, "blob", renamed.Content)
}

func TestRenameMissingProjectIsNotFoundForAnyone(t *testing.T) {
	e := setupEnv(t)
	cookie := e.signupAndSignin(t, "designer_1")

	rec := e.do(t, http.MethodPatch, "/projects/4242", gin.H{"name": "x"}, cookie)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeStatus(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.MessageProjectNotFound, resp.Message)
}

func TestRenameProjectBadID(t *testing.T) {
	e := setupEnv(t)
	cookie := e.signupAndSignin(t, "designer_1")

	rec := e.do(t, http.MethodPatch, "/projects/abc", gin.H{"name": "x"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.MessageBadProjectID, decodeStatus(t, rec).Message)
}

func TestDeleteProject(t *testing.T) {
	e := setupEnv(t)
	owner := e.signupAndSignin(t, "owner")
	intruder := e.signupAndSignin(t, "intruder")
	e.do(t, http.MethodPost, "/projects", gin.H{"name": "p", "project": "blob"}, owner)
	path := fmt.Sprintf("/projects/%d", e.listProjects(t, owner)[0].ID)

	rec := e.do(t, http.MethodDelete, path, nil, intruder)
	assert.Equal(t, dto.MessageNotOwner, decodeStatus(t, rec).Message)
	assert.Len(t, e.listProjects(t, owner), 1)

	rec = e.do(t, http.MethodDelete, path, nil, owner)
	resp := decodeStatus(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, dto.MessageProjectDeleted, resp.Message)
	assert.Empty(t, e.listProjects(t, owner))

	rec = e.do(t, http.MethodDelete, path, nil, intruder)
	assert.Equal(t, dto.MessageProjectNotFound, decodeStatus(t, rec).Message)
}

func TestSnapshotProject(t *testing.T) {
	e := setupEnv(t)
	owner := e.signupAndSignin(t, "owner")
	intruder := e.signupAndSignin(t, "intruder")
	e.do(t, http.MethodPost, "/projects", gin.H{"name": "p", "project": `{"a":1}`}, owner)
	project := e.listProjects(t, owner)[0]
	path := fmt.Sprintf("/projects/%d/snapshot", project.ID)

	rec := e.do(t, http.MethodPost, path, nil, owner)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	store := &fakeSnapshots{uploaded: map[uint][]byte{}}
	e.handler.Snapshots = store

	rec = e.do(t, http.MethodPost, path, nil, intruder)
	assert.Equal(t, dto.MessageNotOwner, decodeStatus(t, rec).Message)
	assert.Empty(t, store.uploaded)

	rec = e.do(t, http.MethodPost, path, nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.URL, fmt.Sprintf("project_%d", project.ID))
	assert.Equal(t, []byte(`{"a":1}`), store.uploaded[project.ID])

	store.err = errors.New("minio is down")
	rec = e.do(t, http.MethodPost, path, nil, owner)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, dto.MessageInternal, decodeStatus(t, rec).Message)
}

// ---- modules ----

func seedModules(t *testing.T, e *testEnv) {
	t.Helper()
	require.NoError(t, e.repo.CreateModules([]ds.Module{
		{Name: "Тумба", Type: 0, Width: 400, Height: 800, Depth: 500, Content: "g1"},
		{Name: "Шкаф", Type: 0, Width: 1200, Height: 2100, Depth: 600, Content: "g2"},
		{Name: "Полка", Type: 1, Width: 600, Height: 300, Depth: 250, Content: "g3"},
	}))
}

func getModules(t *testing.T, e *testEnv, query string) []ds.Module {
	t.Helper()
	rec := e.do(t, http.MethodGet, "/modules"+query, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ModuleListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code)
	return resp.Modules
}

func moduleNames(modules []ds.Module) []string {
	out := []string{}
	for _, m := range modules {
		out = append(out, m.Name)
	}
	return out
}

func TestGetModules(t *testing.T) {
	e := setupEnv(t)
	seedModules(t, e)

	// без параметров - только категория 0
	assert.ElementsMatch(t, []string{"Тумба", "Шкаф"}, moduleNames(getModules(t, e, "")))
	assert.ElementsMatch(t, []string{"Полка"}, moduleNames(getModules(t, e, "?category=1")))
	assert.ElementsMatch(t, []string{"Тумба"}, moduleNames(getModules(t, e, "?max_width=400")))
	assert.ElementsMatch(t, []string{"Шкаф"}, moduleNames(getModules(t, e, "?min_height=2100&max_height=2100&min_depth=600")))
	assert.Empty(t, getModules(t, e, "?category=1&min_width=601"))
}

func TestGetModulesBadQuery(t *testing.T) {
	e := setupEnv(t)

	rec := e.do(t, http.MethodGet, "/modules?min_width=wide", nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp dto.CodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Code)
}

func TestPing(t *testing.T) {
	e := setupEnv(t)

	rec := e.do(t, http.MethodGet, "/ping", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
}
