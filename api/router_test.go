package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Ab4kshin/Unost-backend/internal/model"
	"github.com/Ab4kshin/Unost-backend/internal/storage"
	"github.com/Ab4kshin/Unost-backend/pkg/middleware"
	"github.com/Ab4kshin/Unost-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestAPI(t *testing.T) *API {
	t.Helper()

	gin.SetMode(gin.TestMode)

	viper.Set("jwt.secret", "api-test-secret")
	viper.Set("jwt.ttl_hours", 1)
	viper.Set("upload.max_size", int64(10<<20))

	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(
		model.User{},
		model.Student{},
		model.Group{},
		model.Grade{},
		model.PortfolioFile{},
		model.Complaint{},
		model.Feedback{},
	))

	st, err := storage.New(t.TempDir())
	require.NoError(t, err)

	a := &API{
		DB:      database,
		Router:  gin.New(),
		Argon:   security.New(),
		Storage: st,
	}

	a.Router.Use(gin.Recovery(), middleware.NewRequestIDMiddleware())
	a.registerRoutes()

	return a
}

func doJSON(t *testing.T, a *API, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

var registrationSeq int

// registerStudent registers a fresh student account and returns the
// issued token together with the new user id
func registerStudent(t *testing.T, a *API, fullName, group string) (token string, userID uint) {
	t.Helper()

	registrationSeq++
	rec := doJSON(t, a, http.MethodPost, "/api/register", "", gin.H{
		"email":      fmt.Sprintf("student%d@college.ru", registrationSeq),
		"password":   "secret-pw-123",
		"full_name":  fullName,
		"phone":      "123",
		"birth_date": "2001-05-01",
		"group":      group,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	user := body["user"].(map[string]any)
	return body["token"].(string), uint(user["id"].(float64))
}

// makeAdmin inserts an admin account directly and mints a token for it
func makeAdmin(t *testing.T, a *API) string {
	t.Helper()

	hash, err := a.Argon.GenerateFromPassword("admin-pw-123")
	require.NoError(t, err)

	user := model.User{
		Email:        fmt.Sprintf("admin%d@college.ru", registrationSeq),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	registrationSeq++
	require.NoError(t, a.DB.Create(&user).Error)

	token, err := security.MakeToken(user.ID)
	require.NoError(t, err)
	return token
}

// uploadFile posts a multipart portfolio upload for the given token
func uploadFile(t *testing.T, a *API, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/students/portfolio", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}
