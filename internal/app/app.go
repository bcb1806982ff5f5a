package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront/internal/cfg"
	v1Grpc "github.com/DRSN-tech/storefront/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/storefront/internal/infrastructure/minio"
	"github.com/DRSN-tech/storefront/internal/repository/memory"
	s3Repo "github.com/DRSN-tech/storefront/internal/repository/minio"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/internal/repository/redis"
	redisConv "github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/closer"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// App связывает хранилища, use case'ы и транспорт и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	sessions     *usecase.SessionManager
	httpSrv      *v1Http.Server
	grpcSrv      *v1Grpc.GRPCServer
	outboxWorker *kafka.OutboxWorker // nil, если брокеры не заданы
}

// storage — репозитории выбранного режима хранения.
type storage struct {
	products  usecase.ProductRepository
	customers usecase.CustomerRepository
	orders    usecase.OrderRepository
	outbox    usecase.OutboxRepository
	txManager usecase.Transactor
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(0),
	}

	if err := a.init(); err != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()

		if closeErr := a.closer.Close(ctx); closeErr != nil {
			logger.Warnf("Failed to release resources after init error: %v", closeErr)
		}
		return nil, err
	}

	return a, nil
}

func (a *App) init() error {
	st, err := a.initStorage()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.AddFunc("redis", redisClient.Close)

	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	rConv := redisConv.New()
	sessionRepo := redis.NewSessionRepo(redisClient, rConv, a.cfg.Redis)
	cacheRepo := redis.NewCacheRepo(redisClient, rConv, a.cfg.Redis, a.logger)

	imageLinker, err := a.initImages()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := a.initOutbox(st.outbox); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	a.sessions = usecase.NewSessionManager(sessionRepo, a.logger)
	authUC := usecase.NewAuthUC(st.customers, a.sessions, a.cfg.Session.LoginDelay, a.logger)
	catalogUC := usecase.NewCatalogUC(st.products, cacheRepo, imageLinker, a.logger)
	checkoutUC := usecase.NewCheckoutUC(
		st.orders,
		st.outbox,
		st.txManager,
		kafka.NewOrderEventEncoder(),
		a.cfg.Checkout.Delay,
		a.logger,
	)

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger).Init(a.sessions, authUC, catalogUC, checkoutUC)
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.RegisterServices(a.sessions, catalogUC)

	// Серверы регистрируются последними и останавливаются первыми
	a.closer.Add("grpc server", a.grpcSrv.Stop)
	a.closer.Add("http server", a.httpSrv.Stop)

	return nil
}

func (a *App) initStorage() (*storage, error) {
	switch a.cfg.App.StorageMode {
	case config.StoragePostgres:
		db, err := initPGDB(a.logger, a.cfg)
		if err != nil {
			return nil, err
		}
		a.closer.AddFunc("postgres", func() error {
			db.Close()
			return nil
		})

		a.logger.Infof("Storage: postgres, database: %s", a.cfg.Db.DBName)
		return &storage{
			products:  pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter()),
			customers: pgdb.NewCustomerRepo(db.Pool, pgdbConv.NewCustomerConverter()),
			orders:    pgdb.NewOrderRepo(db.Pool, pgdbConv.NewOrderConverter()),
			outbox:    pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter()),
			txManager: pgdb.NewTransactor(db.Pool),
		}, nil

	default:
		a.logger.Infof("Storage: in-memory mock catalog")
		return &storage{
			products:  memory.NewProductRepo(memory.SeedProducts()),
			customers: memory.NewCustomerRepo(memory.SeedCustomers()),
			orders:    memory.NewOrderRepo(),
			outbox:    memory.NewOutboxRepo(),
			txManager: memory.NewTransactor(),
		}, nil
	}
}

// initImages возвращает nil, если MinIO не настроен: ссылки на изображения тогда отдаются как есть.
func (a *App) initImages() (usecase.ImageLinker, error) {
	if !a.cfg.Minio.Enabled() {
		a.logger.Infof("MinIO is not configured, image links are served as stored")
		return nil, nil
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return nil, err
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer minioCancel()
	if err := clients.EnsureBucket(minioCtx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return nil, err
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, a.cfg.Minio)
	return minioInfra.NewMinioInfrastructure(imageRepo, a.cfg.Minio.PresignTTL, a.logger), nil
}

func (a *App) initOutbox(outbox usecase.OutboxRepository) error {
	if !a.cfg.Kafka.Enabled() {
		a.logger.Warnf("KAFKA_BROKERS is not set, order events stay in the outbox")
		return nil
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.AddFunc("kafka producer", producer.Close)

	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		a.logger.Errorf(err, "failed to ensure kafka topic")
		return err
	}

	a.outboxWorker = kafka.NewOutboxWorker(outbox, a.logger, producer, a.cfg.Outbox.PollInterval, a.cfg.Outbox.BatchSize)
	return nil
}

// Run блокируется до сигнала SIGINT/SIGTERM или падения одного из серверов.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			return e.Wrap(whereami.WhereAmI(), err)
		}
		return nil
	})

	g.Go(func() error {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			a.logger.Errorf(err, "gRPC server failed")
			return e.Wrap(whereami.WhereAmI(), err)
		}
		return nil
	})

	g.Go(func() error {
		a.sessions.RunEviction(gCtx, a.cfg.Session.EvictInterval, a.cfg.Session.IdleTimeout)
		return nil
	})

	if a.outboxWorker != nil {
		g.Go(func() error {
			return a.outboxWorker.Run(gCtx)
		})
	}

	// === Graceful shutdown ===
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Infof("Stopping gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout)
		defer cancel()

		if err := a.closer.Close(shutdownCtx); err != nil {
			a.logger.Errorf(err, "shutdown error")
			return err
		}
		return nil
	})

	err := g.Wait()
	a.logger.Infof("Application shutdown complete")
	return err
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger, cfg.Db.MigrationsDir); err != nil {
		db.Close()
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
