package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"erp-backend/internal/api/handlers"
	"erp-backend/internal/api/middleware"
	"erp-backend/internal/api/routes"
	"erp-backend/internal/config"
	"erp-backend/internal/repository"
	"erp-backend/internal/services"
	"erp-backend/pkg/cache"
	"erp-backend/pkg/database"
	"erp-backend/pkg/jwt"
	"erp-backend/pkg/logger"
	"erp-backend/pkg/metrics"
	"erp-backend/pkg/ratelimit"
	"erp-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	shutdownTimeout = 15 * time.Second
	pruneInterval   = 10 * time.Minute
)

// Service owns the database handle and every fleet service built on it.
type Service struct {
	cfg      *config.Config
	db       *mongo.Database
	redis    *redis.Client
	registry *prometheus.Registry
	jwt      *jwt.JWTUtil
	limiter  ratelimit.RateLimiter
	log      *log.Entry

	Vehicles     *services.VehicleService
	Trips        *services.TripService
	Maintenance  *services.MaintenanceService
	Fuel         *services.FuelService
	Assignments  *services.AssignmentService
	Reports      *services.ReportService
	FleetReports *services.FleetReportService
	Exports      *services.ExportService
	Auth         *services.AuthService
	Users        *services.UserService
}

// Policy converts the fleet config section into forecast thresholds.
func Policy(f config.FleetConfig) (services.ForecastPolicy, error) {
	loc, err := f.Location()
	if err != nil {
		return services.ForecastPolicy{}, err
	}
	return services.ForecastPolicy{
		ComplianceHorizonDays: f.ComplianceHorizonDays,
		UsageWindowDays:       f.UsageWindowDays,
		UrgentThresholdDays:   f.UrgentThresholdDays,
		DefaultIntervalKm:     f.DefaultIntervalKm,
		DefaultIntervalDays:   f.DefaultIntervalDays,
		Location:              loc,
	}, nil
}

// New connects to MongoDB, ensures indexes and builds the services.
// Redis is not touched; call EnableRedis for the HTTP server.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	policy, err := Policy(cfg.Fleet)
	if err != nil {
		return nil, fmt.Errorf("fleet policy: %w", err)
	}

	db, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	vehicleRepo := repository.NewVehicleRepository(db)
	tripRepo := repository.NewTripRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	fuelRepo := repository.NewFuelRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	database.EnsureIndexes(ctx, vehicleRepo, tripRepo, maintenanceRepo, fuelRepo, assignmentRepo, userRepo)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reportMetrics, err := metrics.NewReportMetrics(registry)
	if err != nil {
		_ = database.Disconnect(db.Client())
		return nil, fmt.Errorf("report metrics: %w", err)
	}

	jwtUtil := jwt.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiry)
	reports := services.NewReportService(vehicleRepo, policy, reportMetrics)
	source := services.RepositorySource{
		Vehicles:    vehicleRepo,
		Trips:       tripRepo,
		Maintenance: maintenanceRepo,
		Fuel:        fuelRepo,
		Assignments: assignmentRepo,
	}

	vehicles := services.NewVehicleService(vehicleRepo, tripRepo, maintenanceRepo, fuelRepo, assignmentRepo)
	vehicles.SetForecastPolicy(policy)

	return &Service{
		cfg:          cfg,
		db:           db,
		registry:     registry,
		jwt:          jwtUtil,
		log:          logger.New("app"),
		Vehicles:     vehicles,
		Trips:        services.NewTripService(tripRepo, vehicleRepo),
		Maintenance:  services.NewMaintenanceService(maintenanceRepo, vehicleRepo),
		Fuel:         services.NewFuelService(fuelRepo, vehicleRepo),
		Assignments:  services.NewAssignmentService(assignmentRepo, vehicleRepo),
		Reports:      reports,
		FleetReports: services.NewFleetReportService(source),
		Exports:      services.NewExportService(source, reports),
		Auth:         services.NewAuthService(userRepo, jwtUtil),
		Users:        services.NewUserService(userRepo),
	}, nil
}

// EnableRedis attaches the vehicle cache and the distributed rate limiter.
// Without Redis the limiter is per process and nothing is cached.
func (s *Service) EnableRedis(ctx context.Context) {
	limits := ratelimit.DefaultConfig()
	limits.Enabled = s.cfg.RateLimitEnabled

	if !s.cfg.Redis.Enabled() {
		s.log.Info("Redis not configured; caching disabled, rate limiting in memory")
		s.limiter = s.memoryLimiter(ctx, limits)
		return
	}

	s.redis = redis.NewClient(s.cfg.Redis)
	status := s.redis.HealthCheck(ctx)
	if status.IsConnected {
		s.log.WithField("addr", status.ConnectionInfo).Info("Redis connected")
	} else {
		s.log.WithField("error", status.Error).Warn("Redis unavailable, will retry automatically")
	}

	s.Vehicles.SetCacheManager(cache.NewRedisCacheManager(s.redis, cache.DefaultCacheConfig()))
	s.limiter = ratelimit.NewRedisRateLimiterFrom(s.redis, limits)
}

func (s *Service) memoryLimiter(ctx context.Context, limits *ratelimit.Config) ratelimit.RateLimiter {
	limiter := ratelimit.NewMemoryRateLimiter(limits)
	go func() {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := limiter.Prune(); n > 0 {
					s.log.WithField("windows", n).Debug("Pruned rate limit windows")
				}
			}
		}
	}()
	return limiter
}

// Router builds the gin engine with the full middleware chain.
func (s *Service) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	router.Use(cors.New(corsConfig(s.cfg.AllowedOrigins)))

	var redisHealth handlers.RedisHealth
	if s.redis != nil {
		redisHealth = s.redis
	}
	db := s.db

	routes.SetupRoutes(router, routes.Dependencies{
		JWT:          s.jwt,
		RateLimiter:  s.limiter,
		Gatherer:     s.registry,
		Auth:         s.Auth,
		Vehicles:     s.Vehicles,
		Trips:        s.Trips,
		Maintenance:  s.Maintenance,
		Fuel:         s.Fuel,
		Assignments:  s.Assignments,
		Reports:      s.Reports,
		FleetReports: s.FleetReports,
		Exports:      s.Exports,
		Health: handlers.NewHealthHandler(func(ctx context.Context) error {
			return database.Health(ctx, db)
		}, redisHealth),
	})
	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader, "Retry-After"},
		MaxAge:        12 * time.Hour,
	}

	// Credentials cannot be combined with a wildcard origin.
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (s *Service) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("port", s.cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// Close releases Redis and MongoDB.
func (s *Service) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	errs = append(errs, database.Disconnect(s.db.Client()))
	return errors.Join(errs...)
}
