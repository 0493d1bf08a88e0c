package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arnold/compass/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend stores each key as one row of the kv_entries table.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func encodeEntry(key string, value []byte) (models.KVEntry, error) {
	if json.Valid(value) {
		return models.KVEntry{Key: key, Value: value}, nil
	}
	wrapped, err := json.Marshal(string(value))
	if err != nil {
		return models.KVEntry{}, fmt.Errorf("wrap raw value: %w", err)
	}
	return models.KVEntry{Key: key, Value: wrapped, Raw: true}, nil
}

func decodeEntry(entry models.KVEntry) ([]byte, error) {
	if !entry.Raw {
		return []byte(entry.Value), nil
	}
	var raw string
	if err := json.Unmarshal(entry.Value, &raw); err != nil {
		return nil, fmt.Errorf("unwrap raw value: %w", err)
	}
	return []byte(raw), nil
}

func upsert(tx *gorm.DB, entry *models.KVEntry) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "raw", "updated_at"}),
	}).Create(entry).Error
}

func (b *GormBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.KVEntry
	err := b.db.WithContext(ctx).Where(&models.KVEntry{Key: key}).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return decodeEntry(entry)
}

func (b *GormBackend) Set(ctx context.Context, key string, value []byte) error {
	entry, err := encodeEntry(key, value)
	if err != nil {
		return err
	}
	if err := upsert(b.db.WithContext(ctx), &entry); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (b *GormBackend) SetMany(ctx context.Context, entries map[string][]byte) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range entries {
			entry, err := encodeEntry(key, value)
			if err != nil {
				return err
			}
			if err := upsert(tx, &entry); err != nil {
				return fmt.Errorf("set %s: %w", key, err)
			}
		}
		return nil
	})
}

func (b *GormBackend) Delete(ctx context.Context, key string) error {
	if err := b.db.WithContext(ctx).Delete(&models.KVEntry{Key: key}).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (b *GormBackend) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := b.db.WithContext(ctx).
		Model(&models.KVEntry{}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Pluck("key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

func (b *GormBackend) Clear(ctx context.Context) error {
	err := b.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.KVEntry{}).Error
	if err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	return nil
}

// Close is a no-op: the *gorm.DB is owned by whoever opened it.
func (b *GormBackend) Close() error {
	return nil
}
