package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/tradeinsight/internal/adapter/cache"
	"github.com/seu-repo/tradeinsight/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/tradeinsight/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/tradeinsight/internal/adapter/queue"
	"github.com/seu-repo/tradeinsight/internal/adapter/storage/postgres"
	"github.com/seu-repo/tradeinsight/internal/service/advisor"
	"github.com/seu-repo/tradeinsight/internal/service/analytics"
	"github.com/seu-repo/tradeinsight/internal/service/auth"
	"github.com/seu-repo/tradeinsight/internal/service/dataset"
	"github.com/seu-repo/tradeinsight/internal/service/email"
	"github.com/seu-repo/tradeinsight/internal/service/ingest"
)

func setupTestApp(t *testing.T, env *TestEnv) *fiber.App {
	t.Helper()
	log := env.Logger

	appCache := cache.NewLocalCache(time.Minute, log)
	t.Cleanup(func() { appCache.Close() })
	mq := queue.NewMemoryQueue(log)
	t.Cleanup(func() { mq.Close() })

	provider := ingest.NewDefaultProvider(log)
	tokens := auth.NewJWTService("integration-test-secret", "tradeinsight", time.Hour, appCache, log)
	authService := auth.NewService(postgres.NewUserRepository(env.Gorm, log), tokens, log)
	datasetService := dataset.NewService(postgres.NewDatasetRepository(env.Gorm, log), provider, mq, log)
	analyticsService := analytics.NewService(datasetService, appCache, time.Minute, log)
	advisorService := advisor.NewService(nil, log)
	emailService, err := email.NewService(email.DefaultConfig(), log)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(log)})
	v1 := app.Group("/api/v1")
	authHandler := handlers.NewAuthHandler(authService, log)
	authHandler.RegisterPublic(v1)

	protected := v1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtected(protected)
	handlers.NewDatasetHandler(datasetService, provider, log).Register(protected)
	handlers.NewAnalyticsHandler(analyticsService, log).Register(protected)
	handlers.NewAIHandler(advisorService, datasetService, analyticsService, emailService, log).Register(protected)
	return app
}

func call(t *testing.T, app *fiber.App, method, url, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

// TestAPI_AuthFlow tests signup, login and logout against Postgres
func TestAPI_AuthFlow(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)
	app := setupTestApp(t, env)

	signup := map[string]string{"name": "Test User", "email": "Test@Example.com", "password": "password123"}

	status, body := call(t, app, http.MethodPost, "/api/v1/auth/signup", "", signup)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, body["token"])

	status, _ = call(t, app, http.MethodPost, "/api/v1/auth/signup", "", signup)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "test@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "test@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, status)
	token := body["token"].(string)

	status, _ = call(t, app, http.MethodGet, "/api/v1/datasets", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, app, http.MethodGet, "/api/v1/datasets", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// TestAPI_DatasetAnalyticsFlow tests dataset storage feeding the analytics endpoints
func TestAPI_DatasetAnalyticsFlow(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)
	app := setupTestApp(t, env)

	_, body := call(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name": "Analyst", "email": "analyst@example.com", "password": "password123",
	})
	token := body["token"].(string)

	records := []map[string]interface{}{
		{"Date": "2024-01-10", "Product": "Tea", "Quantity": 10, "Price_Per_Unit": 5, "Total_Value": 50, "Country_of_Origin": "China"},
		{"Date": "2024-02-10", "Product": "Rice", "Quantity": 20, "Price_Per_Unit": 2, "Total_Value": 40, "Country_of_Origin": "Vietnam"},
		{"Date": "2024-03-10", "Product": "Tea", "Quantity": 5, "Price_Per_Unit": 6, "Total_Value": 30, "Country_of_Origin": "China"},
	}

	status, body := call(t, app, http.MethodPost, "/api/v1/datasets", token, map[string]interface{}{"name": "Q1", "records": records})
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)

	status, body = call(t, app, http.MethodGet, "/api/v1/datasets/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["records"], 3)

	status, body = call(t, app, http.MethodGet, "/api/v1/analytics/"+id+"/dashboard", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body)

	status, body = call(t, app, http.MethodPost, "/api/v1/analytics/"+id+"/simulate", token, map[string]float64{"shipping_cost_change": 10})
	require.Equal(t, http.StatusOK, status)
	assert.Less(t, body["new_profit"].(float64), body["original_profit"].(float64))

	status, body = call(t, app, http.MethodGet, "/api/v1/analytics/"+id+"/sustainability", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "green_score")

	// AI endpoints answer 503 without a configured model
	status, _ = call(t, app, http.MethodPost, "/api/v1/ai/report", token, map[string]string{"dataset_id": id})
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = call(t, app, http.MethodDelete, "/api/v1/datasets/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, app, http.MethodGet, "/api/v1/datasets/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// TestAPI_DatasetLimits tests the per-user dataset cap
func TestAPI_DatasetLimits(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)
	app := setupTestApp(t, env)

	_, body := call(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name": "Busy", "email": "busy@example.com", "password": "password123",
	})
	token := body["token"].(string)

	for i := 0; i < 5; i++ {
		status, _ := call(t, app, http.MethodPost, "/api/v1/datasets/generate?count=5&save=true", token, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	status, _ := call(t, app, http.MethodPost, "/api/v1/datasets/generate?count=5&save=true", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = call(t, app, http.MethodGet, "/api/v1/datasets", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["datasets"], 5)
}
