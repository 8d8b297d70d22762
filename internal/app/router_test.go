package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jeeprep_backend/internal/config"
	"jeeprep_backend/internal/model"
	"jeeprep_backend/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*App, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{}
	cfg.JWT.Secret = "router-test-secret-router-test-secret"
	cfg.JWT.ExpireTime = time.Hour

	app := &App{Config: cfg, DB: db, Redis: rdb}
	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	router := gin.New()
	app.Router = router
	app.registerRoutes(router, controllers, cfg)
	return app, db
}

func doJSON(t *testing.T, app *App, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, app *App, name, email string) string {
	t.Helper()
	w := doJSON(t, app, http.MethodPost, "/api/register", "", gin.H{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, app, http.MethodPost, "/api/login", "", gin.H{
		"email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestRouter_HealthIsPublic(t *testing.T) {
	app, _ := newTestApp(t)

	w := doJSON(t, app, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_PracticeRequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)

	w := doJSON(t, app, http.MethodGet, "/api/practice/questions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, app, http.MethodGet, "/api/practice/questions", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_PracticePayloadHidesAnswers(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app, "Asha", "asha@example.com")

	w := doJSON(t, app, http.MethodGet, "/api/practice/questions?subject=Physics", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := w.Body.String()
	assert.NotContains(t, body, "correctAns")
	assert.NotContains(t, body, "explanation")
}

func TestRouter_SubmitAttemptFlow(t *testing.T) {
	app, db := newTestApp(t)
	token := registerAndLogin(t, app, "Ravi", "ravi@example.com")

	question := model.Question{
		Subject:      "Physics",
		Chapter:      "Work and Energy",
		Year:         2024,
		QuestionText: "Work done by a force perpendicular to displacement?",
		Options:      []string{"Zero", "Maximum", "Negative", "Depends on speed"},
		CorrectAns:   "Zero",
		QuestionType: model.MCQ,
		Difficulty:   model.Easy,
	}
	require.NoError(t, db.Create(&question).Error)

	w := doJSON(t, app, http.MethodPost, "/api/practice/attempts", token, gin.H{
		"questionId":     question.ID,
		"selectedAnswer": "Zero",
		"timeTakenSec":   20,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Correct   bool `json:"correct"`
			XPDelta   int  `json:"xpDelta"`
			CoinDelta int  `json:"coinDelta"`
			Profile   struct {
				XP    int `json:"xp"`
				Coins int `json:"coins"`
			} `json:"profile"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Correct)
	assert.Equal(t, 10, resp.Data.XPDelta)
	assert.Equal(t, 1, resp.Data.CoinDelta)
	assert.Equal(t, 10, resp.Data.Profile.XP)
	assert.Equal(t, 101, resp.Data.Profile.Coins)

	var count int64
	require.NoError(t, db.Model(&model.Attempt{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w = doJSON(t, app, http.MethodPost, "/api/practice/attempts", token, gin.H{
		"questionId":     "no-such-question",
		"selectedAnswer": "Zero",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_AdminRoleEnforced(t *testing.T) {
	app, db := newTestApp(t)
	token := registerAndLogin(t, app, "Plain", "plain@example.com")

	w := doJSON(t, app, http.MethodGet, "/api/admin/questions", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, app, http.MethodPost, "/api/admin/questions", token, gin.H{
		"subject":      "Physics",
		"chapter":      "Sneaky",
		"year":         2024,
		"questionText": "Should never land.",
		"options":      []string{"A", "B"},
		"correctAns":   "A",
		"questionType": "MCQ",
		"difficulty":   "Easy",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Promote out of band, then sign in again for a fresh role claim.
	require.NoError(t, db.Model(&model.User{}).
		Where("email = ?", "plain@example.com").
		Update("role", model.RoleAdmin).Error)
	adminToken := loginAgain(t, app, "plain@example.com")

	w = doJSON(t, app, http.MethodGet, "/api/admin/questions", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func loginAgain(t *testing.T, app *App, email string) string {
	t.Helper()
	w := doJSON(t, app, http.MethodPost, "/api/login", "", gin.H{
		"email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.Token
}

func TestRouter_LeaderboardAndDashboard(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app, "Meera", "meera@example.com")

	w := doJSON(t, app, http.MethodGet, "/api/leaderboard", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, app, http.MethodGet, "/api/dashboard", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
