package http

import (
	"taskmanager/internal/adapter/database"
	"taskmanager/internal/adapter/database/repository"
	"taskmanager/internal/adapter/http/handler"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/port"
	"taskmanager/internal/core/service"
	"taskmanager/internal/core/util"
	"taskmanager/pkg/auth"
	"taskmanager/pkg/config"
	"taskmanager/pkg/logger"
)

type Container struct {
	UserRepo port.UserRepository
	TaskRepo port.TaskRepository

	AuthService     port.AuthService
	TaskService     port.TaskService
	IdentityService port.IdentityService
	Tokens          middleware.TokenVerifier

	AuthHandler   *handler.AuthHandler
	TaskHandler   *handler.TaskHandler
	HealthHandler *handler.HealthHandler
}

func NewContainer(cfg *config.Config, db *database.DB, cache port.CacheRepository, metrics port.Metrics, log *logger.Logger) *Container {
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration)
	hasher := util.NewBcryptHasher(cfg.Auth.BcryptCost)
	policy := domain.NewPaginationPolicy(cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit)

	authSvc := service.NewAuthService(userRepo, hasher, tokens, metrics, log)
	taskSvc := service.NewTaskService(taskRepo, policy, metrics, log)
	identitySvc := service.NewIdentityService(userRepo, cache, cfg.Cache.IdentityTTL, metrics, log)

	return &Container{
		UserRepo: userRepo,
		TaskRepo: taskRepo,

		AuthService:     authSvc,
		TaskService:     taskSvc,
		IdentityService: identitySvc,
		Tokens:          tokens,

		AuthHandler:   handler.NewAuthHandler(authSvc, log),
		TaskHandler:   handler.NewTaskHandler(taskSvc, log),
		HealthHandler: handler.NewHealthHandler(db, log),
	}
}
