// Package container wires the application's stores and services together.
// Everything is explicitly constructed here; there is no ambient global state.
package container

import (
	"context"
	"log/slog"

	"tokentasks/internal/config"
	"tokentasks/internal/repository"
	"tokentasks/internal/services"
)

// Container holds the fully wired application graph.
type Container struct {
	Config *config.AppConfig
	Logger *slog.Logger

	UserRepo        repository.UserRepository
	TaskRepo        repository.TaskRepository
	RewardRepo      repository.RewardRepository
	AchievementRepo repository.AchievementRepository

	Cache             services.CacheManager
	Tracker           services.AchievementTracker
	CompletionService services.TaskCompletionService
	RedemptionService services.RewardRedemptionService
	TaskService       services.TaskService
	RewardService     services.RewardService
	UserService       services.UserService
	AuthService       services.AuthService
	HealthService     *services.HealthService
}

// Options tweaks construction for non-default environments.
type Options struct {
	// CacheBackend overrides the backend chosen from config (tests use the
	// in-memory backend regardless of environment).
	CacheBackend services.CacheBackend

	// Version is reported by the health endpoint.
	Version string
}

// New builds the application graph from configuration.
func New(cfg *config.AppConfig, logger *slog.Logger, opts Options) *Container {
	if logger == nil {
		logger = slog.Default()
	}

	userRepo := repository.NewMemoryUserRepository()
	taskRepo := repository.NewMemoryTaskRepository()
	rewardRepo := repository.NewMemoryRewardRepository()
	achievementRepo := repository.NewMemoryAchievementRepository()

	backend := opts.CacheBackend
	backendName := "memory"
	if backend == nil {
		if cfg.CacheEnabled() {
			backend = services.NewRedisCacheBackend(
				cfg.GetRedisAddr(), cfg.GetRedisPassword(), cfg.GetRedisDB(), "tokentasks:")
			backendName = "redis"
		} else {
			backend = services.NewMemoryCacheBackend()
		}
	}
	cache := services.NewCacheManager(backend, backendName, logger)

	tracker := services.NewAchievementTracker(achievementRepo, taskRepo, logger)

	health := services.NewHealthService(opts.Version, cfg.GetEnvironment())
	health.RegisterChecker(services.NewCacheHealthChecker(cache))
	health.RegisterChecker(services.NewStoreHealthChecker("user_store", func(ctx context.Context) error {
		_, err := userRepo.List(ctx)
		return err
	}))
	health.RegisterChecker(services.NewStoreHealthChecker("task_store", func(ctx context.Context) error {
		_, err := taskRepo.List(ctx)
		return err
	}))

	return &Container{
		Config:            cfg,
		Logger:            logger,
		UserRepo:          userRepo,
		TaskRepo:          taskRepo,
		RewardRepo:        rewardRepo,
		AchievementRepo:   achievementRepo,
		Cache:             cache,
		Tracker:           tracker,
		CompletionService: services.NewTaskCompletionService(taskRepo, userRepo, tracker, cache),
		RedemptionService: services.NewRewardRedemptionService(rewardRepo, userRepo, tracker),
		TaskService:       services.NewTaskService(taskRepo, userRepo, cache),
		RewardService:     services.NewRewardService(rewardRepo, userRepo, cache),
		UserService:       services.NewUserService(userRepo),
		AuthService:       services.NewAuthService(userRepo, cfg),
		HealthService:     health,
	}
}
