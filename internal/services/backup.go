package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/repository"
	"github.com/arnold/compass/internal/storage"
)

// ExportVersion is written into every export. Imports must share its major version.
const ExportVersion = "1.0.0"

var (
	ErrVersionIncompatible = errors.New("incompatible export version")
	ErrMalformedImport     = errors.New("malformed import data")
)

type ImportMode string

const (
	ModeReplace ImportMode = "replace"
	ModeMerge   ImportMode = "merge"
)

// ExportData holds one field per exported store key. An absent field was not
// exported; it is never read as an empty collection.
type ExportData struct {
	Mission              json.RawMessage `json:"mission,omitempty"`
	Values               json.RawMessage `json:"values,omitempty"`
	Roles                json.RawMessage `json:"roles,omitempty"`
	Goals                json.RawMessage `json:"goals,omitempty"`
	WeeklyPlans          json.RawMessage `json:"weeklyPlans,omitempty"`
	BigRocks             json.RawMessage `json:"bigRocks,omitempty"`
	DailyTasks           json.RawMessage `json:"dailyTasks,omitempty"`
	Streaks              json.RawMessage `json:"streaks,omitempty"`
	Achievements         json.RawMessage `json:"achievements,omitempty"`
	Promises             json.RawMessage `json:"promises,omitempty"`
	QuadrantStats        json.RawMessage `json:"quadrantStats,omitempty"`
	WeeklyReflections    json.RawMessage `json:"weeklyReflections,omitempty"`
	NotificationSettings json.RawMessage `json:"notificationSettings,omitempty"`
	AppSettings          json.RawMessage `json:"appSettings,omitempty"`
}

type ExportEnvelope struct {
	Version    string     `json:"version"`
	ExportedAt time.Time  `json:"exportedAt"`
	Data       ExportData `json:"data"`
}

type ImportResult struct {
	Mode  ImportMode    `json:"mode"`
	Keys  []storage.Key `json:"keys"`
	Items int           `json:"items"`
}

type DataSize struct {
	KB        float64 `json:"kb"`
	ItemCount int     `json:"itemCount"`
}

// exportField binds an envelope field to its store key.
type exportField struct {
	key storage.Key
	get func(*ExportData) *json.RawMessage
	// check decodes the field into its entity type to reject malformed input.
	check func(json.RawMessage) error
	array bool
	// text fields are stored as plain strings rather than JSON.
	text     bool
	settings bool
	// catalog fields hold the fixed achievement catalog rather than user
	// records, so they do not add to the item count.
	catalog bool
}

func checkAs[T any](raw json.RawMessage) error {
	var v T
	return json.Unmarshal(raw, &v)
}

var exportFields = []exportField{
	{key: storage.KeyMission, get: func(d *ExportData) *json.RawMessage { return &d.Mission }, check: checkAs[string], text: true},
	{key: storage.KeyValues, get: func(d *ExportData) *json.RawMessage { return &d.Values }, check: checkAs[[]models.Value], array: true},
	{key: storage.KeyRoles, get: func(d *ExportData) *json.RawMessage { return &d.Roles }, check: checkAs[[]models.Role], array: true},
	{key: storage.KeyGoals, get: func(d *ExportData) *json.RawMessage { return &d.Goals }, check: checkAs[[]models.LongTermGoal], array: true},
	{key: storage.KeyWeeklyPlans, get: func(d *ExportData) *json.RawMessage { return &d.WeeklyPlans }, check: checkAs[[]models.WeeklyPlan], array: true},
	{key: storage.KeyBigRocks, get: func(d *ExportData) *json.RawMessage { return &d.BigRocks }, check: checkAs[[]models.BigRock], array: true},
	{key: storage.KeyDailyTasks, get: func(d *ExportData) *json.RawMessage { return &d.DailyTasks }, check: checkAs[[]models.DailyTask], array: true},
	{key: storage.KeyStreaks, get: func(d *ExportData) *json.RawMessage { return &d.Streaks }, check: checkAs[models.StreakData]},
	{key: storage.KeyAchievements, get: func(d *ExportData) *json.RawMessage { return &d.Achievements }, check: checkAs[[]models.Achievement], array: true, catalog: true},
	{key: storage.KeyPromises, get: func(d *ExportData) *json.RawMessage { return &d.Promises }, check: checkAs[[]models.Promise3010], array: true},
	{key: storage.KeyQuadrantStats, get: func(d *ExportData) *json.RawMessage { return &d.QuadrantStats }, check: checkAs[models.QuadrantStats]},
	{key: storage.KeyWeeklyReflections, get: func(d *ExportData) *json.RawMessage { return &d.WeeklyReflections }, check: checkAs[[]models.WeeklyReflection], array: true},
	{key: storage.KeyNotificationSettings, get: func(d *ExportData) *json.RawMessage { return &d.NotificationSettings }, check: checkAs[models.NotificationSettings], settings: true},
	{key: storage.KeyAppSettings, get: func(d *ExportData) *json.RawMessage { return &d.AppSettings }, check: checkAs[models.AppSettings], settings: true},
}

// Backup exports, imports, measures and clears the whole store.
type Backup struct {
	store  *storage.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewBackup(store *storage.Store, logger *slog.Logger) *Backup {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backup{store: store, logger: logger, now: time.Now}
}

// Envelope assembles the export from the current store contents. Keys that
// are absent or fail to read are left out.
func (b *Backup) Envelope(ctx context.Context) ExportEnvelope {
	env := ExportEnvelope{Version: ExportVersion, ExportedAt: b.now().UTC()}
	keys := make([]storage.Key, 0, len(exportFields))
	for _, f := range exportFields {
		keys = append(keys, f.key)
	}
	stored := b.store.GetMultiple(ctx, keys)

	for _, f := range exportFields {
		raw, ok := stored[f.key]
		if !ok {
			continue
		}
		if f.text {
			encoded, err := json.Marshal(string(raw))
			if err != nil {
				continue
			}
			raw = encoded
		} else if !json.Valid(raw) {
			b.logger.Warn("skipping corrupt value in export", slog.String("key", string(f.key)))
			continue
		}
		*f.get(&env.Data) = json.RawMessage(raw)
	}
	return env
}

// Export returns the current data as an indented JSON document.
func (b *Backup) Export(ctx context.Context) (string, error) {
	data, err := json.MarshalIndent(b.Envelope(ctx), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	return string(data), nil
}

// ExportToFile writes the export into dir and returns the file path.
func (b *Backup) ExportToFile(ctx context.Context, dir string) (string, error) {
	doc, err := b.Export(ctx)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("compass-backup-%s.json", b.now().Format("2006-01-02-150405")))
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	b.logger.Info("data exported", slog.String("path", path))
	return path, nil
}

// Import applies an export document. The whole document is parsed and checked
// before anything is written, and all keys are written in one batch.
func (b *Backup) Import(ctx context.Context, doc string, mode ImportMode) (ImportResult, error) {
	if mode != ModeReplace && mode != ModeMerge {
		return ImportResult{}, fmt.Errorf("unknown import mode %q", mode)
	}

	var env ExportEnvelope
	if err := json.Unmarshal([]byte(doc), &env); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if !compatibleVersion(env.Version) {
		return ImportResult{}, fmt.Errorf("%w: got %q, want %s.x.x", ErrVersionIncompatible, env.Version, majorVersion(ExportVersion))
	}

	result := ImportResult{Mode: mode, Keys: []storage.Key{}}
	writes := make(map[storage.Key][]byte)
	for _, f := range exportFields {
		raw := *f.get(&env.Data)
		if isAbsent(raw) {
			continue
		}
		if mode == ModeMerge && f.settings {
			continue
		}
		if err := f.check(raw); err != nil {
			return ImportResult{}, fmt.Errorf("%w: %s: %v", ErrMalformedImport, f.key, err)
		}

		value := []byte(raw)
		switch {
		case f.text:
			var text string
			_ = json.Unmarshal(raw, &text)
			value = []byte(text)
		case f.array && mode == ModeMerge:
			merged, err := b.mergeByID(ctx, f.key, raw)
			if err != nil {
				return ImportResult{}, err
			}
			value = merged
		}

		writes[f.key] = value
		result.Keys = append(result.Keys, f.key)
		result.Items += itemCount(f, raw)
	}

	if !b.store.SetMultiple(ctx, writes) {
		return ImportResult{}, fmt.Errorf("write import: %w", repository.ErrPersist)
	}
	b.logger.Info("data imported", slog.String("mode", string(mode)), slog.Int("keys", len(result.Keys)), slog.Int("items", result.Items))
	return result, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func majorVersion(v string) string {
	major, _, _ := strings.Cut(v, ".")
	return major
}

func compatibleVersion(v string) bool {
	return v != "" && majorVersion(v) == majorVersion(ExportVersion)
}

// mergeByID unions the stored array with incoming. A stored record whose id
// matches an incoming one is replaced in place; the rest of incoming is
// appended in order. Records are kept as raw JSON so unknown fields survive.
func (b *Backup) mergeByID(ctx context.Context, key storage.Key, incoming json.RawMessage) ([]byte, error) {
	var existing []json.RawMessage
	if raw, ok := b.store.GetRaw(ctx, key); ok {
		if err := json.Unmarshal(raw, &existing); err != nil {
			b.logger.Warn("stored collection is corrupt, replacing it", slog.String("key", string(key)))
			existing = nil
		}
	}
	var next []json.RawMessage
	if err := json.Unmarshal(incoming, &next); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedImport, key, err)
	}

	position := make(map[string]int, len(existing))
	for i, item := range existing {
		if id, ok := recordID(item); ok {
			position[id] = i
		}
	}
	merged := append([]json.RawMessage{}, existing...)
	for _, item := range next {
		id, ok := recordID(item)
		if i, seen := position[id]; ok && seen {
			merged[i] = item
			continue
		}
		if ok {
			position[id] = len(merged)
		}
		merged = append(merged, item)
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode merged %s: %w", key, err)
	}
	return out, nil
}

// recordID returns the record's id in its JSON form, so string and numeric
// ids never collide.
func recordID(record json.RawMessage) (string, bool) {
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(record, &probe); err != nil || isAbsent(probe.ID) {
		return "", false
	}
	return string(bytes.TrimSpace(probe.ID)), true
}

// itemCount counts an array field by its length and any other field as one
// item. The achievement catalog counts as nothing.
func itemCount(f exportField, raw json.RawMessage) int {
	if f.catalog {
		return 0
	}
	if !f.array {
		return 1
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return len(items)
}

// DataSize estimates storage use from the serialized export: two bytes per
// character, reported in KB to two decimals.
func (b *Backup) DataSize(ctx context.Context) (DataSize, error) {
	env := b.Envelope(ctx)
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return DataSize{}, fmt.Errorf("encode export: %w", err)
	}

	count := 0
	for _, f := range exportFields {
		if raw := *f.get(&env.Data); !isAbsent(raw) {
			count += itemCount(f, raw)
		}
	}
	kb := float64(len([]rune(string(data)))*2) / 1024
	return DataSize{KB: math.Round(kb*100) / 100, ItemCount: count}, nil
}

// ClearAll removes every stored key. It cannot be undone.
func (b *Backup) ClearAll(ctx context.Context) error {
	if !b.store.ClearAll(ctx) {
		return fmt.Errorf("clear store: %w", repository.ErrPersist)
	}
	b.logger.Warn("all data cleared")
	return nil
}
