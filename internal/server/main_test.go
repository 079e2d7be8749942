package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// smallGIF is a valid 1x1 GIF used in upload tests.
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x37, 0x61, 0x01, 0x00,
	0x01, 0x00, 0x80, 0x01, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x44,
	0x01, 0x00, 0x3B,
}

type testEnv struct {
	app    *fiber.App
	server *Server
	db     *gorm.DB
	redis  *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	os.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(redisClient)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		JWTSecret: "test-secret-not-for-production-use!!",
		Port:      "0",
		Env:       "test",
		PageSize:  10,
		MediaRoot: t.TempDir(),
	}

	srv, err := NewServerWithDeps(cfg, db, redisClient)
	require.NoError(t, err)

	return &testEnv{app: srv.NewApp(), server: srv, db: db, redis: mr}
}

// signup registers a user directly through the service and returns a Bearer
// token for them.
func (e *testEnv) signup(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "long enough password",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return &out.User, out.Token
}

func (e *testEnv) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) postForm(t *testing.T, path, token string, values url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// postMultipart submits a post form with an optional file upload.
func (e *testEnv) postMultipart(t *testing.T, path, token string, fields map[string]string, filename string, fileContent []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest), "body: %s", body)
}

func (e *testEnv) createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, e.db.Create(group).Error)
	return group
}

func (e *testEnv) createPost(t *testing.T, authorID uint, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: authorID}
	require.NoError(t, e.db.Create(post).Error)
	return post
}

func (e *testEnv) createPosts(t *testing.T, authorID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		e.createPost(t, authorID, fmt.Sprintf("post %d", i))
	}
}

func urlForPost(id uint) string {
	return fmt.Sprintf("/posts/%d", id)
}

func urlForComment(id uint) string {
	return fmt.Sprintf("/posts/%d/comment", id)
}
