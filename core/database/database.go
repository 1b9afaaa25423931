package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrClosed is returned by a Store that was never opened or has been closed.
var ErrClosed = errors.New("store is closed")

// Store owns the database handle. Every operation borrows a connection
// for its own lifetime through Conn or Tx.
type Store struct {
	db     *gorm.DB
	driver string
}

// NewStore wraps an already opened GORM handle.
func NewStore(db *gorm.DB) *Store {
	driver := ""
	if db != nil {
		driver = db.Dialector.Name()
	}
	return &Store{db: db, driver: driver}
}

// Connect opens the configured store and verifies it answers a ping.
// Every failure is reported as a *ConnectionError.
func Connect(cfg Config) (*Store, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite, "":
		dsn, err := sqliteDSN(cfg.Path, timeout)
		if err != nil {
			return nil, &ConnectionError{Driver: DriverSQLite, Err: err}
		}
		dialector = sqlite.Open(dsn)
	case DriverMySQL:
		// Special characters in the password must be URL encoded.
		userInfo := url.UserPassword(cfg.User, cfg.Password).String()
		dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
			userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)
		dialector = mysql.Open(dsn)
	default:
		return nil, &ConnectionError{Driver: cfg.Driver, Err: fmt.Errorf("unsupported driver %q", cfg.Driver)}
	}

	db, err := Open(dialector)
	if err != nil {
		return nil, &ConnectionError{Driver: dialector.Name(), Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &ConnectionError{Driver: dialector.Name(), Err: fmt.Errorf("failed to get sql.DB: %w", err)}
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, &ConnectionError{Driver: dialector.Name(), Err: fmt.Errorf("failed to ping database: %w", err)}
	}

	return NewStore(db), nil
}

// Open opens a GORM handle with the settings every store in this service uses.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// sqliteDSN refuses to create a missing database file: the dataset is
// provisioned externally and an empty file would hide that.
func sqliteDSN(path string, timeoutSeconds int) (string, error) {
	if path == "" {
		return "", errors.New("sqlite path is empty")
	}
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("database file %q not found: %w", path, err)
	}
	return fmt.Sprintf("%s?_busy_timeout=%d", path, timeoutSeconds*1000), nil
}

// DB exposes the underlying handle for schema inspection.
func (s *Store) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Driver returns the dialector name (sqlite, mysql).
func (s *Store) Driver() string {
	if s == nil {
		return ""
	}
	return s.driver
}

// Conn runs fn on a dedicated connection which is released when fn returns.
// A failure to acquire the connection is reported as a *ConnectionError;
// errors returned by fn pass through untouched.
func (s *Store) Conn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return &ConnectionError{Driver: s.Driver(), Err: ErrClosed}
	}

	entered := false
	err := s.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		entered = true
		return fn(tx.Session(&gorm.Session{NewDB: true}))
	})
	if err != nil && !entered {
		return &ConnectionError{Driver: s.driver, Err: err}
	}
	return err
}

// Tx runs fn inside a single transaction. The transaction is committed when
// fn returns nil and rolled back otherwise, including on panic.
func (s *Store) Tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return &ConnectionError{Driver: s.Driver(), Err: ErrClosed}
	}

	entered := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entered = true
		return fn(tx)
	})
	if err != nil && !entered {
		return &ConnectionError{Driver: s.driver, Err: err}
	}
	return err
}

// Close releases the pool. It is safe to call on a nil or failed store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.db = nil
	return sqlDB.Close()
}
