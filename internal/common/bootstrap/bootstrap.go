package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/AlibekovAA/task-manager/internal/auth/http"
	authservice "github.com/AlibekovAA/task-manager/internal/auth/service"
	"github.com/AlibekovAA/task-manager/internal/common/clock"
	"github.com/AlibekovAA/task-manager/internal/common/config"
	"github.com/AlibekovAA/task-manager/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/task-manager/internal/common/crypto"
	"github.com/AlibekovAA/task-manager/internal/common/db"
	commonhttp "github.com/AlibekovAA/task-manager/internal/common/http"
	"github.com/AlibekovAA/task-manager/internal/common/jwtverify"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/common/resilience"
	"github.com/AlibekovAA/task-manager/internal/common/validation"
	taskhttp "github.com/AlibekovAA/task-manager/internal/task/http"
	taskrepo "github.com/AlibekovAA/task-manager/internal/task/repository"
	taskservice "github.com/AlibekovAA/task-manager/internal/task/service"
	userrepo "github.com/AlibekovAA/task-manager/internal/user/repository"
)

type App struct {
	Config      config.Config
	Log         *logger.Logger
	Pool        *pgxpool.Pool
	Handler     http.Handler
	AuthLimiter *commonhttp.RateLimiter

	UserRepo    userrepo.Repository
	TaskRepo    taskrepo.Repository
	AuthService *authservice.AuthService
	TaskService *taskservice.TaskService
}

type stores struct {
	users  userrepo.Repository
	tasks  taskrepo.Repository
	pinger commonhttp.Pinger
	pool   *pgxpool.Pool
}

// NewApp wires every component from cfg. The caller owns the returned App and
// must Close it.
func NewApp(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	clk := clock.NewRealClock()

	st, err := openStores(ctx, cfg, log, clk)
	if err != nil {
		return nil, err
	}

	codec, err := jwtverify.NewCodec(cfg.JWTSecret, cfg.JWTExpiresIn, clk)
	if err != nil {
		if st.pool != nil {
			st.pool.Close()
		}
		return nil, fmt.Errorf("failed to build token codec: %w", err)
	}

	errHandler := commonhttp.NewErrorHandler(log, cfg.IsDevelopment())
	dispatcher := commonhttp.NewDispatcher(jwtverify.NewGate(codec), validation.New(), errHandler, log)

	authService := authservice.NewAuthService(
		st.users,
		commoncrypto.NewBcryptHasher(cfg.BcryptCost),
		authservice.NewTokenIssuer(codec),
		log,
	)
	taskService := taskservice.NewTaskService(st.tasks, log)

	limiter := commonhttp.NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)

	router := NewRouter(RouterDeps{
		Errors:      errHandler,
		Dispatcher:  dispatcher,
		Clock:       clk,
		Pinger:      st.pinger,
		AuthService: authService,
		TaskService: taskService,
		AuthLimit:   limiter.Middleware("auth", errHandler),
	})

	handler := commonhttp.BuildBaseHandler(commonhttp.BaseHandlerConfig{
		Log:            log,
		Errors:         errHandler,
		IDs:            commoncrypto.NewUUIDGenerator(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxBodyBytes:   cfg.MaxRequestBodySize,
		RequestTimeout: cfg.RequestTimeout,
	}, router)

	log.Infof("application wired: store=%s env=%s", cfg.StoreDriver, cfg.AppEnv)

	return &App{
		Config:      cfg,
		Log:         log,
		Pool:        st.pool,
		Handler:     handler,
		AuthLimiter: limiter,
		UserRepo:    st.users,
		TaskRepo:    st.tasks,
		AuthService: authService,
		TaskService: taskService,
	}, nil
}

func (a *App) Close() {
	a.AuthLimiter.Stop()
	if a.Pool != nil {
		a.Pool.Close()
	}
}

func openStores(ctx context.Context, cfg config.Config, log *logger.Logger, clk clock.Clock) (stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return stores{
			users:  userrepo.NewMemoryRepository(clk),
			tasks:  taskrepo.NewMemoryRepository(clk),
			pinger: commonhttp.PingFunc(func(context.Context) error { return nil }),
		}, nil
	case config.StoreDriverPostgres:
		pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
		if err != nil {
			return stores{}, err
		}
		breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:       "postgres",
			Threshold:  constants.StoreBreakerThreshold,
			Timeout:    constants.StoreBreakerCallTimeout,
			ResetAfter: constants.StoreBreakerResetAfter,
			IsFailure:  db.IsStoreFailure,
			Clock:      clk,
			Logger:     log,
		})
		return stores{
			users:  userrepo.NewGuardedRepository(userrepo.NewPgRepository(pool, log), breaker),
			tasks:  taskrepo.NewGuardedRepository(taskrepo.NewPgRepository(pool, log), breaker),
			pinger: pool,
			pool:   pool,
		}, nil
	default:
		return stores{}, fmt.Errorf("%w: %q", config.ErrUnknownStoreDriver, cfg.StoreDriver)
	}
}

type RouterDeps struct {
	Errors      *commonhttp.ErrorHandler
	Dispatcher  *commonhttp.Dispatcher
	Clock       clock.Clock
	Pinger      commonhttp.Pinger
	AuthService *authservice.AuthService
	TaskService *taskservice.TaskService
	AuthLimit   func(http.Handler) http.Handler
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.NotFound(commonhttp.NotFoundHandler(deps.Errors))
	r.MethodNotAllowed(commonhttp.MethodNotAllowedHandler(deps.Errors))

	r.Get("/health", commonhttp.HealthHandler(deps.Clock))
	r.Get("/health/ready", commonhttp.ReadyHandler(deps.Pinger, deps.Clock, deps.Errors))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Mount("/auth", authhttp.NewHandler(deps.AuthService, deps.Dispatcher, deps.AuthLimit))
		r.Mount("/tasks", taskhttp.NewHandler(deps.TaskService, deps.Dispatcher))
	})

	return r
}
