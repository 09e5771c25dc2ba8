package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/Kaua1102bit/avaliacao-saep/internal/application/analytics"
	"github.com/Kaua1102bit/avaliacao-saep/internal/application/auth"
	"github.com/Kaua1102bit/avaliacao-saep/internal/application/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/application/usecase"
	inframetrics "github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/metrics"
	infrapdf "github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/pdf"
	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/session"
	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/storage"
	httpRouter "github.com/Kaua1102bit/avaliacao-saep/internal/interfaces/http"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/config"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}
	defer st.Close()

	// Lista de revocación: Redis si REDIS_URL está definido, si no en memoria (un solo nodo).
	var tokens auth.TokenStore = session.NewMemoryStore()
	var redisPing func(context.Context) error
	if cfg.Redis.URL != "" {
		rdb, err := session.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		redisStore := session.NewRedisStore(rdb)
		tokens, redisPing = redisStore, redisStore.Ping
	}

	metrics := inframetrics.New()

	authUC := auth.NewAuthUseCase(st.Users, tokens, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	movementUC := inventory.NewMovementUseCase(st.Tx, st.Products, st.Movements, st.Users,
		inventory.WithMetrics(metrics),
		inventory.WithReportGenerator(infrapdf.NewMarotoPDFGenerator(cfg.App.Name+" - Movimientos")),
		inventory.WithLogger(log),
	)
	productUC := usecase.NewProductUseCase(st.Products, st.Tx)
	dashboardUC := appanalytics.NewDashboardUseCase(st.Products, st.Movements)

	authLimiter := httpRouter.NewIPRateLimiter(cfg.RateLimit.AuthPerSecond, cfg.RateLimit.AuthBurst)
	go authLimiter.Cleanup(ctx, time.Minute)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, metrics))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name + " API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		checks := fiber.Map{"store": "ok"}
		status := fiber.StatusOK
		if err := st.Ping(pingCtx); err != nil {
			checks["store"] = err.Error()
			status = fiber.StatusServiceUnavailable
		}
		if redisPing != nil {
			checks["redis"] = "ok"
			if err := redisPing(pingCtx); err != nil {
				checks["redis"] = err.Error()
				status = fiber.StatusServiceUnavailable
			}
		}
		return c.Status(status).JSON(fiber.Map{"status": statusText(status), "service": cfg.App.Name, "checks": checks})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProductUC:       productUC,
		MovementUC:      movementUC,
		ReplenishmentUC: inventory.NewReplenishmentUseCase(st.Products, st.Movements),
		DashboardUC:     dashboardUC,
		AuthLimiter:     authLimiter,
		SecureCookie:    cfg.App.Env == "production",
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func statusText(status int) string {
	if status == fiber.StatusOK {
		return "ok"
	}
	return "degraded"
}
