// Package recorder keeps an after-action combat log. Domain events arrive on
// buffered dispatcher handlers, wait in per-table queues and are written to
// the database in batches by a flush loop.
package recorder

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skirmish-game/skirmish/internal/config"
	"github.com/skirmish-game/skirmish/internal/database"
	"github.com/skirmish-game/skirmish/internal/dispatcher"
	"github.com/skirmish-game/skirmish/internal/queue"
	"github.com/skirmish-game/skirmish/pkg/core"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by New when the database manager is not connected.
var ErrNoDatabase = errors.New("recorder database not connected")

// WaveSink receives wave transitions in addition to the database.
type WaveSink interface {
	WriteWave(run string, e core.WaveEvent) error
}

// Dependencies holds the collaborators of a Recorder.
type Dependencies struct {
	Database   *database.Manager
	Dispatcher *dispatcher.Dispatcher
	Waves      WaveSink
	Logger     *slog.Logger
	Config     config.RecorderConfig
	RunID      string
	Seed       int64
	Levels     int
}

type queues struct {
	shots      *queue.Queue[Shot]
	hits       *queue.Queue[Hit]
	kills      *queue.Queue[Kill]
	playerHits *queue.Queue[PlayerHit]
	waves      *queue.Queue[Wave]
	paths      *queue.Queue[ProjectilePath]
}

func newQueues() *queues {
	return &queues{
		shots:      queue.New[Shot](),
		hits:       queue.New[Hit](),
		kills:      queue.New[Kill](),
		playerHits: queue.New[PlayerHit](),
		waves:      queue.New[Wave](),
		paths:      queue.New[ProjectilePath](),
	}
}

// Recorder persists the combat log of one run.
type Recorder struct {
	db     *database.Manager
	waves  WaveSink
	log    *slog.Logger
	cfg    config.RecorderConfig
	run    Run
	queues *queues

	flushMu   sync.Mutex
	stopChan  chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New migrates the recorder tables, inserts the run row and subscribes to the
// simulation events on d.
func New(deps Dependencies) (*Recorder, error) {
	if deps.Database == nil || !deps.Database.IsValid {
		return nil, ErrNoDatabase
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Config.FlushInterval <= 0 {
		deps.Config.FlushInterval = 5 * time.Second
	}
	if deps.Config.BufferSize <= 0 {
		deps.Config.BufferSize = 1000
	}
	if deps.RunID == "" {
		deps.RunID = uuid.NewString()
	}

	if err := deps.Database.Migrate(Models()...); err != nil {
		return nil, err
	}

	r := &Recorder{
		db:     deps.Database,
		waves:  deps.Waves,
		log:    deps.Logger.With("component", "recorder"),
		cfg:    deps.Config,
		queues: newQueues(),
		run: Run{
			ID:        deps.RunID,
			StartedAt: time.Now().UTC(),
			Seed:      deps.Seed,
			Levels:    deps.Levels,
		},
	}
	if err := r.db.DB.Create(&r.run).Error; err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	if deps.Dispatcher != nil {
		r.register(deps.Dispatcher)
	}
	r.log.Info("recording run", "run", r.run.ID)
	return r, nil
}

// RunID returns the id of the run being recorded.
func (r *Recorder) RunID() string {
	return r.run.ID
}

func (r *Recorder) register(d *dispatcher.Dispatcher) {
	opt := dispatcher.Buffered(r.cfg.BufferSize)
	d.Register(core.CommandFired, r.handle, opt)
	d.Register(core.CommandHit, r.handle, opt)
	d.Register(core.CommandKill, r.handle, opt)
	d.Register(core.CommandPlayerHit, r.handle, opt)
	d.Register(core.CommandWave, r.handle, opt)
	d.Register(core.CommandPath, r.handle, opt)
}

func (r *Recorder) handle(e dispatcher.Event) (any, error) {
	return nil, r.Record(e.Payload)
}

// Record queues one simulation event for the next flush.
func (r *Recorder) Record(payload any) error {
	run := r.run.ID
	switch e := payload.(type) {
	case core.FiredEvent:
		r.queues.shots.Push(shotFrom(run, e))
	case core.HitEvent:
		r.queues.hits.Push(hitFrom(run, e))
	case core.KillEvent:
		r.queues.kills.Push(killFrom(run, e))
	case core.PlayerHitEvent:
		r.queues.playerHits.Push(playerHitFrom(run, e))
	case core.WaveEvent:
		w, err := waveFrom(run, e)
		if err != nil {
			return fmt.Errorf("failed to encode wave roster: %w", err)
		}
		r.queues.waves.Push(w)
		if r.waves != nil {
			if err := r.waves.WriteWave(run, e); err != nil {
				r.log.Warn("wave telemetry failed", "error", err)
			}
		}
	case core.ProjectilePath:
		r.queues.paths.Push(pathFrom(run, e))
	default:
		return fmt.Errorf("unexpected payload %T", payload)
	}
	return nil
}

// Pending returns the number of rows waiting for the next flush.
func (r *Recorder) Pending() int {
	q := r.queues
	return q.shots.Len() + q.hits.Len() + q.kills.Len() +
		q.playerHits.Len() + q.waves.Len() + q.paths.Len()
}

// Start runs the flush loop until Close.
func (r *Recorder) Start() {
	if r.stopChan != nil {
		return
	}
	r.stopChan = make(chan struct{})
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.cfg.FlushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stopChan:
				return
			case <-ticker.C:
				if err := r.Flush(); err != nil {
					r.log.Error("flush failed", "error", err)
				}
			}
		}
	}()
}

// Flush writes every queued row. Rows of a failed table stay queued for the
// next attempt.
func (r *Recorder) Flush() error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	db := r.db.DB
	q := r.queues
	err := errors.Join(
		writeQueue(db, q.shots, "shots"),
		writeQueue(db, q.hits, "hits"),
		writeQueue(db, q.kills, "kills"),
		writeQueue(db, q.playerHits, "player hits"),
		writeQueue(db, q.waves, "waves"),
		writeQueue(db, q.paths, "projectile paths"),
	)
	if err != nil {
		return err
	}
	if r.db.SqliteFilePath == "" {
		return nil
	}
	return r.db.DumpMemoryToDisk()
}

// writeQueue writes all items from a queue to the database in a transaction.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string) error {
	if q.Empty() {
		return nil
	}

	items := q.Drain(0)
	tx := db.Begin()
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		q.Push(items...)
		return fmt.Errorf("error creating %s: %w", name, err)
	}
	return tx.Commit().Error
}

// Close stops the flush loop, writes what is left and stamps the run end.
// The dispatcher must be closed first so no event arrives afterwards.
func (r *Recorder) Close() error {
	var err error
	r.closeOnce.Do(func() {
		if r.stopChan != nil {
			close(r.stopChan)
			<-r.done
		}

		ended := time.Now().UTC()
		r.run.EndedAt = &ended
		endErr := r.db.DB.Model(&Run{}).Where("id = ?", r.run.ID).Update("ended_at", ended).Error
		if endErr != nil {
			endErr = fmt.Errorf("failed to end run: %w", endErr)
		}
		err = errors.Join(r.Flush(), endErr)
		r.log.Info("recording closed", "run", r.run.ID)
	})
	return err
}
