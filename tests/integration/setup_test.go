package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rebalancer/internal/allocation"
	"rebalancer/internal/handlers"
	"rebalancer/internal/logger"
	"rebalancer/internal/middleware"
	"rebalancer/internal/models"
	"rebalancer/internal/services"
	"rebalancer/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Quotes *stubQuotes
}

// stubQuotes serves canned prices instead of calling the quote provider.
type stubQuotes struct {
	prices map[string]float64
	err    error
}

func (s *stubQuotes) FetchPrices(_ context.Context, tickers []string) (map[string]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]float64)
	for _, t := range tickers {
		if p, ok := s.prices[t]; ok {
			out[t] = p
		}
	}
	return out, nil
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Snapshot{},
		&models.Holding{},
		&models.TickerClassification{},
		&models.TargetAllocation{},
		&models.PortfolioAnalysis{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite. The AI classifier is absent, so classifications resolve through the
// builtin map and the fallback, and quotes come from a stub.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	stub := &stubQuotes{prices: map[string]float64{}}

	builder := allocation.NewBuilder(allocation.DefaultBuilderConfig())
	engine := allocation.NewEngine(allocation.EngineConfig{HoldThreshold: allocation.DefaultHoldThreshold})

	// Services
	userService := services.NewUserService(db)
	classificationService := services.NewClassificationService(db, nil)
	snapshotService := services.NewSnapshotService(db, classificationService)
	targetService := services.NewTargetService(db)
	portfolioService := services.NewPortfolioService(snapshotService, classificationService, targetService, stub, builder, engine)
	analysisService := services.NewAnalysisService(db, portfolioService, nil)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
	classificationHandler := handlers.NewClassificationHandler(classificationService)
	targetHandler := handlers.NewTargetHandler(targetService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	pipelineHandler := handlers.NewPipelineHandler(classificationService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Pipeline routes
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware("pipeline-test-key"))
	pipeline.POST("/reclassify", pipelineHandler.ReclassifyAll)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	snapshots := protected.Group("/snapshots")
	snapshots.POST("/upload", snapshotHandler.Upload)
	snapshots.GET("", snapshotHandler.List)
	snapshots.GET("/dates", snapshotHandler.Dates)
	snapshots.GET("/:id", snapshotHandler.Get)
	snapshots.DELETE("/:id", snapshotHandler.Delete)
	snapshots.DELETE("", snapshotHandler.Clear)

	classifications := protected.Group("/classifications")
	classifications.GET("", classificationHandler.List)
	classifications.GET("/:ticker", classificationHandler.Get)
	classifications.PUT("/:ticker", classificationHandler.Update)
	classifications.POST("/:ticker/reclassify", classificationHandler.Reclassify)

	targets := protected.Group("/targets")
	targets.GET("", targetHandler.ListAll)
	targets.GET("/:dimension", targetHandler.Get)
	targets.PUT("/:dimension", targetHandler.Save)

	portfolio := protected.Group("/portfolio")
	portfolio.GET("/breakdown", portfolioHandler.Breakdown)
	portfolio.GET("/rebalance", portfolioHandler.Rebalance)
	portfolio.GET("/live", portfolioHandler.Live)

	analysis := protected.Group("/analysis")
	analysis.GET("", analysisHandler.Get)
	analysis.POST("/generate", analysisHandler.Generate)

	return &testApp{DB: db, Router: router, Quotes: stub}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// upload posts a positions CSV as multipart form data.
func (app *testApp) upload(t *testing.T, brokerage, date, csv, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("brokerage", brokerage); err != nil {
		t.Fatalf("failed to write brokerage field: %v", err)
	}
	if date != "" {
		if err := writer.WriteField("date", date); err != nil {
			t.Fatalf("failed to write date field: %v", err)
		}
	}
	part, err := writer.CreateFormFile("file", "positions.csv")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("failed to write file part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/api/v1/snapshots/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}
