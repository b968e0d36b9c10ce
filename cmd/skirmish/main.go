// Command skirmish runs the wave shooter in a terminal.
//
// Usage: skirmish [config dir]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/skirmish-game/skirmish/internal/audio"
	"github.com/skirmish-game/skirmish/internal/config"
	"github.com/skirmish-game/skirmish/internal/game"
	"github.com/skirmish-game/skirmish/internal/logging"
	intOtel "github.com/skirmish-game/skirmish/internal/otel"
	"github.com/skirmish-game/skirmish/internal/session"
)

const appName = "skirmish"

func main() {
	configDir := "."
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}
	if err := run(configDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configDir string) error {
	sessionStart := time.Now()
	cfgErr := config.Load(configDir)

	logFile, err := logging.OpenLogFile(config.GetString("logsDir"), appName, sessionStart)
	if err != nil {
		return err
	}
	defer logFile.Close()

	provider, err := intOtel.New(intOtel.FromConfig(config.GetOTelConfig(), logFile))
	if err != nil {
		return fmt.Errorf("failed to initialize OTel provider: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	runID := uuid.NewString()
	status := session.NewContext(runID)
	opts := []logging.Option{logging.WithContext(logging.RunContext(runID, status.LevelIndex))}

	var gelfErr error
	if config.GetBool("graylog.enabled") {
		gw, err := logging.NewGELFWriter(config.GetString("graylog.address"))
		if err != nil {
			gelfErr = err
		} else {
			defer gw.Close()
			opts = append(opts, logging.WithGELF(gw))
		}
	}

	slogs := logging.NewSlogManager()
	slogs.Setup(logFile, config.GetString("logLevel"), provider.LoggerProvider(), opts...)
	log := slogs.Logger()
	if cfgErr != nil {
		log.Warn("Failed to load config, using defaults", "error", cfgErr)
	}
	if gelfErr != nil {
		log.Warn("Graylog disabled", "error", gelfErr)
	}
	zlog := logging.NewZerolog(logFile, config.GetString("logLevel"))

	var sound game.Audio = game.NopAudio{}
	if config.GetBool("audio.enabled") {
		p := audio.New(0.4)
		if err := p.Init(); err != nil {
			log.Warn("Audio disabled", "error", err)
		} else {
			defer p.Close()
			sound = p
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := newView(screen)
	s, err := session.Build(session.Options{
		Context: status,
		Visuals: v,
		Audio:   sound,
		Logger:  log,
		ZLogger: zlog,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Error("Session shutdown failed", "error", err)
		}
		log.Info("Session ended", "duration", time.Since(sessionStart))
	}()

	loop(s, v, screen, config.GetInt("tickRate"), log)
	return nil
}

// loop feeds key presses into the session at a fixed tick rate until quit.
func loop(s *session.Session, v *view, screen tcell.Screen, tickRate int, log *slog.Logger) {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	var c controls
	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if c.key(ev, time.Now()) {
					log.Info("Quit requested")
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if s.Tick(dt, c.input(now)) {
				log.Info("Level cleared", "level", s.Status().LevelIndex)
			}
			v.draw(s.World(), s.Status())
		}
	}
}
