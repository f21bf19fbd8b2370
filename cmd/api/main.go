package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-ledger/internal/application/inventory"
	"github.com/jhoicas/wms-ledger/internal/application/usecase"
	"github.com/jhoicas/wms-ledger/internal/domain/repository"
	"github.com/jhoicas/wms-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/wms-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/wms-ledger/internal/infrastructure/rabbitmq"
	infraredis "github.com/jhoicas/wms-ledger/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/wms-ledger/internal/interfaces/http"
	"github.com/jhoicas/wms-ledger/pkg/config"
	"github.com/jhoicas/wms-ledger/pkg/logger"
)

// backend repositorios fuera de transacción más el TxRunner del almacén elegido.
type backend struct {
	tx         inventory.TxRunner
	items      repository.InventoryItemRepository
	movements  repository.InventoryMovementRepository
	warehouses repository.WarehouseRepository
	rules      repository.StorageRuleRepository
	bins       repository.BinLocationRepository
	close      func()
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	if cfg.App.Storage == "memory" {
		log.Warn().Msg("STORAGE=memory: el inventario no se persiste")
		store := memory.NewStore()
		return &backend{
			tx:         store,
			items:      store.Items(),
			movements:  store.Movements(),
			warehouses: store.Warehouses(),
			rules:      store.StorageRules(),
			bins:       store.Bins(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	runner := postgres.NewTxRunner(pool, cfg.Engine.LockTimeout)
	log.Info().Stringer("tx_runner", runner).Msg("almacén PostgreSQL listo")
	return &backend{
		tx:         runner,
		items:      postgres.NewInventoryItemRepository(pool),
		movements:  postgres.NewInventoryMovementRepository(pool),
		warehouses: postgres.NewWarehouseRepository(pool),
		rules:      postgres.NewStorageRuleRepository(pool),
		bins:       postgres.NewBinLocationRepository(pool),
		close:      pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	appLog := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log := appLog.Zerolog()
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.App.Storage).
		Dur("lock_timeout", cfg.Engine.LockTimeout).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de inventario")
	}
	defer be.close()

	// Caché de totales (opcional)
	var cache inventory.TotalsCache = inventory.NopCache{}
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer client.Close()
		cache = infraredis.NewTotalsCache(client, cfg.App.Name, cfg.Redis.TTL)
	}

	// Eventos del ledger (opcional)
	var publisher inventory.EventPublisher = inventory.NopPublisher{}
	if cfg.AMQP.URL != "" {
		conn, ch, err := rabbitmq.SetupConn(ctx, cfg.AMQP.URL, cfg.AMQP.Exchange, 5, appLog.Component("rabbitmq"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer conn.Close()
		defer ch.Close()
		publisher = rabbitmq.NewPublisher(ch, cfg.AMQP.Exchange, cfg.App.Name)
	}

	availability := inventory.NewAvailabilityUseCase(be.items)
	allocation := inventory.NewAllocationUseCase(be.tx, availability, publisher, cache, appLog.Component("allocation"))
	stock := inventory.NewStockUseCase(be.tx, publisher, cache, appLog.Component("stock"))
	query := inventory.NewQueryUseCase(be.items, be.movements, cache, appLog.Component("query"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "WMS Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: API sin autenticación")
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		Availability:   availability,
		Allocation:     allocation,
		Stock:          stock,
		Query:          query,
		WarehouseUC:    usecase.NewWarehouseUseCase(be.warehouses),
		StorageRuleUC:  usecase.NewStorageRuleUseCase(be.rules),
		LocationUC:     usecase.NewLocationUseCase(be.tx, be.bins, be.rules, stock),
		JWTSecret:      cfg.JWT.Secret,
		RequestTimeout: cfg.HTTP.RequestTimeout,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
