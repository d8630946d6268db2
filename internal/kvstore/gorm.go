package kvstore

import (
	"context"
	"errors"
	"time"

	"lovecorner/internal/middleware"
	"lovecorner/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted key/value row.
type Entry struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM.
func (Entry) TableName() string {
	return "kv_entries"
}

// Gorm stores collections as rows of a single kv_entries table, letting the
// flat key/value model ride on SQLite or PostgreSQL.
type Gorm struct {
	db *gorm.DB
}

// NewGorm migrates the kv_entries table and wraps the connection as a Store.
func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := observability.TraceStoreOperation(ctx, "sql", "get", key)
	defer span.End()

	var entry Entry
	err := g.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		middleware.StoreErrors.WithLabelValues("sql", "get").Inc()
		observability.RecordErrorInContext(ctx, err)
		return nil, false, err
	}
	return entry.Value, true, nil
}

func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := observability.TraceStoreOperation(ctx, "sql", "set", key)
	defer span.End()

	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		middleware.StoreErrors.WithLabelValues("sql", "set").Inc()
		observability.RecordErrorInContext(ctx, err)
	}
	return err
}
