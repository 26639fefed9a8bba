package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/ports"
)

// SQLiteJournal implements ports.SessionJournal using GORM
type SQLiteJournal struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.SessionJournal = (*SQLiteJournal)(nil)

// lifecycleTypes are the events that decide whether a session is still expected to exist
var lifecycleTypes = []string{
	string(domain.EventCreateFailed),
	string(domain.EventCreated),
	string(domain.EventDestroyed),
}

// NewSQLiteJournal opens (or creates) the journal database at dbPath
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:  newGormLogger(),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets concurrent CLI invocations read while one writes
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&SessionEventModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session_events schema: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

// Record appends an event, assigning an ID and timestamp when missing
func (j *SQLiteJournal) Record(ctx context.Context, event domain.SessionEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	model := domainToEventModel(event)
	err := withRetry(func() error {
		return j.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to record %s event for %s: %w", event.Type, event.SessionName, err)
	}
	return nil
}

// List returns matching events, newest first
func (j *SQLiteJournal) List(ctx context.Context, filter domain.EventFilter) ([]domain.SessionEvent, error) {
	var models []SessionEventModel

	err := withRetry(func() error {
		query := j.db.WithContext(ctx).Order("seq DESC")
		if filter.SessionName != "" {
			query = query.Where("session_name = ?", filter.SessionName)
		}
		if filter.InstanceID != "" {
			query = query.Where("instance_id = ?", filter.InstanceID)
		}
		if filter.Type != "" {
			query = query.Where("type = ?", string(filter.Type))
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
		return query.Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list session events: %w", err)
	}

	events := make([]domain.SessionEvent, 0, len(models))
	for _, m := range models {
		events = append(events, eventModelToDomain(m))
	}
	return events, nil
}

// LatestCreated returns, per session, the newest "created" event that no
// later destroyed or create_failed event supersedes. Results are in journal order.
func (j *SQLiteJournal) LatestCreated(ctx context.Context) ([]domain.SessionEvent, error) {
	var models []SessionEventModel

	err := withRetry(func() error {
		latest := j.db.Model(&SessionEventModel{}).
			Select("MAX(seq)").
			Where("type IN ?", lifecycleTypes).
			Group("session_name")

		return j.db.WithContext(ctx).
			Where("seq IN (?)", latest).
			Where("type = ?", string(domain.EventCreated)).
			Order("seq ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to load live sessions from journal: %w", err)
	}

	events := make([]domain.SessionEvent, 0, len(models))
	for _, m := range models {
		events = append(events, eventModelToDomain(m))
	}
	return events, nil
}

// Close releases the database connection
func (j *SQLiteJournal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withRetry retries fn while SQLite reports the database busy or locked
func withRetry(fn func() error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, err)
}
