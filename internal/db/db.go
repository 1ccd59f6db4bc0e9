package db

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/BruksfildServices01/studiobook/internal/logging"
	"github.com/BruksfildServices01/studiobook/internal/models"
	"github.com/BruksfildServices01/studiobook/internal/timezone"
)

// Connect opens postgres for postgres:// URLs and the pure-Go sqlite
// driver for anything else (local development).
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	if IsPostgresDSN(dsn) {
		cfg.PrepareStmt = true
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
		return db, nil
	}

	logging.Log.Info("using sqlite database", zap.String("dsn", dsn))
	return OpenSQLite(dsn, cfg)
}

func OpenSQLite(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	// Timestamps are compared as text; keep every value in UTC.
	cfg.NowFunc = func() time.Time { return time.Now().UTC() }

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.BusinessHour{},
		&models.Service{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	backfillTimezones(db)

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	// Owner schedules must never overlap, even under concurrent writers.
	for _, stmt := range []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_owner_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_owner_no_overlap
                EXCLUDE USING gist (
                    owner_id WITH =,
                    tstzrange(start_time, end_time, '[)') WITH &&
                ) WHERE (status <> 'CANCELLED');
            END IF;
        END $$`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			logging.Log.Warn("overlap constraint not installed", zap.Error(err))
			return nil
		}
	}

	return nil
}

// backfillTimezones gives rows created before the timezone column the
// default zone. A failure is logged and does not stop startup.
func backfillTimezones(db *gorm.DB) {
	res := db.Exec(
		"UPDATE businesses SET timezone = ? WHERE timezone IS NULL OR timezone = ''",
		timezone.DefaultTimezone,
	)
	if res.Error != nil {
		logging.Log.Warn("timezone backfill failed", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		logging.Log.Info("timezone backfilled", zap.Int64("businesses", res.RowsAffected))
	}
}
