// Command ambientd runs the ambient soundscape daemon: a drifting
// world simulation paced by a ticker, a synthesis engine on the
// default audio device, and an HTTP control surface for triggers and
// state streaming.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/veiltone/ambientd/api"
	"github.com/veiltone/ambientd/audio"
	"github.com/veiltone/ambientd/run"
	"github.com/veiltone/ambientd/synth"
	"github.com/veiltone/ambientd/world"
)

type config struct {
	tickHz float64
	port   int
	seed   int64 // 0 = time-seeded
	level  slog.Level
}

func loadConfig() config {
	cfg := config{tickHz: 20.0, port: 3000}

	if v := os.Getenv("AMBIENTD_TICK_HZ"); v != "" {
		if hz, err := strconv.ParseFloat(v, 64); err == nil && hz > 0 {
			cfg.tickHz = hz
		}
	}
	if v := os.Getenv("AMBIENTD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 && port < 65536 {
			cfg.port = port
		}
	}
	if v := os.Getenv("AMBIENTD_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.seed = seed
		}
	}
	if v := os.Getenv("AMBIENTD_LOG_LEVEL"); v != "" {
		_ = cfg.level.UnmarshalText([]byte(v))
	}
	return cfg
}

func main() {
	cfg := loadConfig()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.level}))
	slog.SetDefault(log)

	log.Info("starting", "tick_hz", cfg.tickHz, "port", cfg.port)

	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	engine := world.NewEngine(rng, log)
	initial := engine.Snapshot()
	initialParams := synth.ParamsFrom(initial)

	shared := synth.NewSharedParams(initialParams)
	hub := run.NewHub(run.Update{World: initial, Audio: initialParams})

	// Audio is best-effort: a failed start leaves the daemon running
	// the control path and API without sound.
	audioEngine := audio.NewEngine(audio.LoadConfig(), shared)
	if err := audioEngine.Start(); err != nil {
		log.Warn("audio engine failed to start, continuing without audio", "error", err)
	} else if audioEngine.Silent() {
		log.Info("audio engine running silent")
	} else {
		acfg := audioEngine.Config()
		log.Info("audio engine started",
			"backend", acfg.Backend, "sample_rate", acfg.SampleRate,
			"channels", acfg.Channels, "format", acfg.Format.String())
	}
	defer audioEngine.Stop()

	events := make(chan world.Event, 100)
	snapshots := make(chan world.Snapshot, 16)

	worldDone := make(chan struct{})
	go func() {
		defer close(worldDone)
		run.World(engine, events, snapshots, log)
	}()

	controlDone := make(chan struct{})
	go func() {
		defer close(controlDone)
		run.Control(snapshots, shared, hub, log)
	}()

	tickCtx, stopTicker := context.WithCancel(context.Background())
	tickerDone := make(chan struct{})
	go func() {
		defer close(tickerDone)
		run.Ticker(tickCtx, events, cfg.tickHz, log)
	}()

	// Periodic state logger.
	logCtx, stopLogger := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-logCtx.Done():
				return
			case <-ticker.C:
				u := hub.Latest()
				log.Info("state",
					"density", fmt.Sprintf("%.3f", u.World.Density),
					"rhythm", fmt.Sprintf("%.3f", u.World.Rhythm),
					"tension", fmt.Sprintf("%.3f", u.World.Tension),
					"energy", fmt.Sprintf("%.3f", u.World.Energy),
					"warmth", fmt.Sprintf("%.3f", u.World.Warmth))
			}
		}
	}()

	server := api.NewServer(events, hub, cfg.tickHz, log)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.port),
		Handler: server.Handler(),
	}
	go func() {
		log.Info("api server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("api server failed", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down")

	// Stop external event sources before closing the event channel:
	// first the API, then the ticker, so nothing sends on a closed
	// channel. The world and control tasks then drain and exit.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("api server shutdown", "error", err)
	}

	stopTicker()
	<-tickerDone

	close(events)
	<-worldDone
	<-controlDone
	stopLogger()

	log.Info("stopped")
}
