package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/skirmish-game/skirmish/internal/config"
	"github.com/skirmish-game/skirmish/internal/database"
	"github.com/skirmish-game/skirmish/internal/dispatcher"
	"github.com/skirmish-game/skirmish/internal/game"
	"github.com/skirmish-game/skirmish/internal/influx"
	"github.com/skirmish-game/skirmish/internal/level"
	"github.com/skirmish-game/skirmish/internal/logging"
	"github.com/skirmish-game/skirmish/internal/recorder"
	"github.com/skirmish-game/skirmish/internal/save"
	"github.com/skirmish-game/skirmish/internal/storage"
)

// Options are the pieces Build cannot take from the loaded configuration.
type Options struct {
	Context *Context
	Visuals game.Visuals
	Audio   game.Audio
	Logger  *slog.Logger
	ZLogger zerolog.Logger
	Clock   func() time.Time
}

// Build assembles a session from the loaded configuration. The recorder and
// telemetry are optional: when they fail to come up the session runs without
// them.
func Build(opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Context == nil {
		opts.Context = NewContext(uuid.NewString())
	}
	log := opts.Logger

	catalog := level.Default()
	if path := config.GetString("levels.file"); path != "" {
		c, err := level.Load(path)
		if err != nil {
			return nil, err
		}
		catalog = c
	}

	seed := config.GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	disp, err := dispatcher.New(logging.NewZerologAdapter(opts.ZLogger))
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	world, err := game.NewWorld(game.Dependencies{
		Tuning:  config.GetTuning(),
		Catalog: catalog,
		Visuals: opts.Visuals,
		Audio:   opts.Audio,
		Events:  disp,
		RNG:     game.NewPRNG(seed),
		Logger:  log.With("component", "world"),
		Clock:   opts.Clock,
	})
	if err != nil {
		return nil, err
	}
	world.Director().SetAutoStart(config.GetDuration("level.autoStartDelay").Seconds())

	backend, err := storage.NewBackend(config.GetStorageConfig(), opts.ZLogger)
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		return nil, fmt.Errorf("failed to init %s storage: %w", config.GetStorageConfig().Type, err)
	}

	saveCfg := config.GetSaveConfig()
	codec, err := save.NewCodec(saveCfg.Compress)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	saves, err := save.NewManager(save.Dependencies{
		Backend: backend,
		Codec:   codec,
		Slot:    saveCfg.Slot,
		Logger:  log.With("component", "save"),
	})
	if err != nil {
		codec.Close()
		_ = backend.Close()
		return nil, err
	}

	s, err := New(Dependencies{
		World:      world,
		Saves:      saves,
		Dispatcher: disp,
		Logger:     log,
		Context:    opts.Context,
	})
	if err != nil {
		codec.Close()
		_ = backend.Close()
		return nil, err
	}
	s.OnClose(backend.Close)
	s.OnClose(func() error {
		codec.Close()
		return nil
	})

	if rc := config.GetRecorderConfig(); rc.Enabled {
		if err := attachRecorder(s, rc, seed, catalog.Len(), opts); err != nil {
			log.Warn("combat recorder disabled", "error", err)
		}
	}

	log.Info("session ready",
		"run", opts.Context.Status().RunID,
		"seed", seed,
		"levels", catalog.Len(),
		"save", saves.Location())
	return s, nil
}

func attachRecorder(s *Session, rc config.RecorderConfig, seed int64, levels int, opts Options) error {
	db := database.NewManager(opts.ZLogger)
	if err := db.Open(rc.Driver, rc.SQLitePath); err != nil {
		return err
	}
	s.OnClose(db.Close)

	var waves recorder.WaveSink
	if config.GetBool("influx.enabled") {
		im := influx.NewManager(opts.ZLogger, config.GetString("influx.backupPath"))
		if err := im.Connect(); err != nil {
			opts.Logger.Warn("wave telemetry disabled", "error", err)
		} else {
			s.OnClose(im.Close)
			waves = im
		}
	}

	rec, err := recorder.New(recorder.Dependencies{
		Database:   db,
		Dispatcher: s.disp,
		Waves:      waves,
		Logger:     opts.Logger,
		Config:     rc,
		RunID:      s.ctx.Status().RunID,
		Seed:       seed,
		Levels:     levels,
	})
	if err != nil {
		return err
	}
	rec.Start()
	s.OnClose(rec.Close)
	return nil
}
