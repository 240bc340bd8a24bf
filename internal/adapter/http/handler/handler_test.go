package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/adapter/database"
	"taskmanager/internal/adapter/database/repository"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/port"
	"taskmanager/internal/core/service"
	"taskmanager/internal/core/util"
	"taskmanager/pkg/auth"
	"taskmanager/pkg/logger"
)

const testSecret = "handler-test-secret"

type testApp struct {
	Router *gin.Engine
	Users  port.UserRepository
	Tasks  port.TaskRepository
	JWT    *auth.JWT
}

func newTestApp(db *database.DB) *testApp {
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	tokens := auth.NewJWT(testSecret, 0)

	authHandler := NewAuthHandler(service.NewAuthService(users, util.NewBcryptHasher(4), tokens, nil, log), log)
	taskHandler := NewTaskHandler(service.NewTaskService(tasks, domain.NewPaginationPolicy(10, 100), nil, log), log)
	identities := service.NewIdentityService(users, nil, 0, nil, log)

	router := gin.New()
	router.Use(middleware.CurrentMiddleware())
	router.GET("/health", NewHealthHandler(db, log).Health)

	public := router.Group("/auth")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
	}

	protected := router.Group("/tasks")
	protected.Use(middleware.Authenticate(tokens, identities, log))
	{
		protected.GET("", taskHandler.List)
		protected.POST("", taskHandler.Create)
		protected.GET("/:id", taskHandler.Get)
		protected.PATCH("/:id", taskHandler.Update)
		protected.DELETE("/:id", taskHandler.Delete)
	}

	return &testApp{
		Router: router,
		Users:  users,
		Tasks:  tasks,
		JWT:    tokens,
	}
}

func (a *testApp) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	return rr
}

func decode[T any](rr *httptest.ResponseRecorder) T {
	var data T
	_ = json.Unmarshal(rr.Body.Bytes(), &data)
	return data
}
