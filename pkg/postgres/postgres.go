package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	applicationName = "storefront"
	pingTimeout     = 5 * time.Second
)

// ErrDirtySchema — предыдущая миграция схемы витрины упала на середине, нужна ручная правка.
var ErrDirtySchema = errors.New("storefront schema is dirty")

// PgDatabase — пул соединений к базе витрины: каталог, покупатели, заказы и outbox.
type PgDatabase struct {
	Pool *pgxpool.Pool
	Dsn  string
	cfg  *cfg.PGDBCfg
}

func NewPgDatabase(pool *pgxpool.Pool, cfg *cfg.PGDBCfg, dsn string) *PgDatabase {
	return &PgDatabase{Pool: pool, cfg: cfg, Dsn: dsn}
}

// BuildDSN собирает строку подключения. application_name помечает соединения витрины в pg_stat_activity.
func BuildDSN(cfg *cfg.PGDBCfg) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s application_name=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
		applicationName,
	)
}

// Connect открывает пул к базе витрины и проверяет его.
func Connect(cfg *cfg.PGDBCfg) (*PgDatabase, error) {
	dsn := BuildDSN(cfg)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, e.Wrap(fmt.Sprintf("open storefront db %s:%s/%s", cfg.Host, cfg.Port, cfg.DBName), err)
	}

	db := NewPgDatabase(pool, cfg, dsn)
	if err := db.Ping(); err != nil {
		pool.Close()
		return nil, err
	}

	return db, nil
}

func (db *PgDatabase) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return e.Wrap(fmt.Sprintf("ping storefront db %s", db.cfg.DBName), err)
	}

	return nil
}

// Close закрывает пул.
func (db *PgDatabase) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// RunMigrations доводит схему витрины до последней версии из dir (по умолчанию db/migrations).
func (db *PgDatabase) RunMigrations(logger logger.Logger, dir string) error {
	const (
		driverName         = "pgx"
		databaseDriverName = "postgres"
	)
	op := "migrate storefront schema from " + dir

	sqlDb, err := sql.Open(driverName, db.Dsn)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer sqlDb.Close()

	driver, err := postgres.WithInstance(sqlDb, &postgres.Config{})
	if err != nil {
		return e.Wrap(op, err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, databaseDriverName, driver)
	if err != nil {
		return e.Wrap(op, err)
	}

	from, dirty, err := schemaVersion(m)
	if err != nil {
		return e.Wrap(op, err)
	}
	if dirty {
		return e.Wrap(op, fmt.Errorf("%w at version %d", ErrDirtySchema, from))
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Infof("storefront schema is up to date at version %d", from)
			return nil
		}
		return e.Wrap(op, err)
	}

	to, _, err := schemaVersion(m)
	if err != nil {
		return e.Wrap(op, err)
	}

	logger.Infof("storefront schema migrated from version %d to %d", from, to)
	return nil
}

// schemaVersion возвращает 0 для пустой базы.
func schemaVersion(m *migrate.Migrate) (uint, bool, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	return version, dirty, err
}
