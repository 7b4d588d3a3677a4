package system

import (
	"fmt"
	"time"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	scoreObject   = "scores"
	scoreProperty = "best"
)

// scoreStore is the subset of *gdata.Manager the score book uses.
type scoreStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// ScoreRecord is the persisted best run.
type ScoreRecord struct {
	Best      int       `yaml:"best"`
	RunID     string    `yaml:"run_id"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// ScoreBook keeps the best score across runs. Without a store it works in
// memory only.
type ScoreBook struct {
	store  scoreStore
	record ScoreRecord
	log    *zap.Logger
}

// OpenScoreBook opens platform storage for appName. Storage errors are logged
// and leave the book in memory-only mode.
func OpenScoreBook(appName string, log *zap.Logger) *ScoreBook {
	if log == nil {
		log = zap.NewNop()
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warn("score storage unavailable, scores will not persist", zap.Error(err))
		return NewScoreBook(nil, log)
	}
	return NewScoreBook(m, log)
}

// NewScoreBook loads the best score from store, which may be nil.
func NewScoreBook(store scoreStore, log *zap.Logger) *ScoreBook {
	if log == nil {
		log = zap.NewNop()
	}
	b := &ScoreBook{log: log.Named("scores")}
	if store != nil {
		b.store = store
	}
	if err := b.load(); err != nil {
		b.log.Warn("failed to load best score", zap.Error(err))
	}
	return b
}

func (b *ScoreBook) load() error {
	if b.store == nil || !b.store.ObjectPropExists(scoreObject, scoreProperty) {
		return nil
	}
	data, err := b.store.LoadObjectProp(scoreObject, scoreProperty)
	if err != nil {
		return fmt.Errorf("system: load score: %w", err)
	}
	var rec ScoreRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("system: unmarshal score: %w", err)
	}
	b.record = rec
	return nil
}

// Best returns the best score so far.
func (b *ScoreBook) Best() int {
	return b.record.Best
}

// Record returns the best run.
func (b *ScoreBook) Record() ScoreRecord {
	return b.record
}

// Submit records score if it beats the best. It reports whether it did; a
// new best is kept in memory even when saving fails.
func (b *ScoreBook) Submit(score int, runID string) (bool, error) {
	if score <= b.record.Best {
		return false, nil
	}
	b.record = ScoreRecord{Best: score, RunID: runID, UpdatedAt: time.Now().UTC()}
	b.log.Info("new best score", zap.Int("score", score), zap.String("run", runID))
	if b.store == nil {
		return true, nil
	}
	data, err := yaml.Marshal(b.record)
	if err != nil {
		return true, fmt.Errorf("system: marshal score: %w", err)
	}
	if err := b.store.SaveObjectProp(scoreObject, scoreProperty, data); err != nil {
		return true, fmt.Errorf("system: save score: %w", err)
	}
	return true, nil
}
