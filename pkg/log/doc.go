/*
Package log provides structured logging for bocker using zerolog.

It wraps zerolog to give every package in the engine JSON-structured
logging with configurable levels. Callers that want a request-scoped
logger tagged with an image or container ID build one directly off the
global Logger rather than going through a dedicated per-entity helper —
bocker only ever tags by one of two fields (image_id, container_id),
so a whole family of With*ID wrappers would just be restating
Logger.With().Str(...).Logger() under different names.

# Architecture

	┌──────────────── LOGGING SYSTEM ────────────────┐
	│                                                  │
	│  Global Logger                                  │
	│   - zerolog.Logger instance                     │
	│   - initialized via log.Init()                  │
	│                                                  │
	│  Configuration                                  │
	│   - Level: debug/info/warn/error                │
	│   - JSONOutput: JSON or console (human)         │
	│   - Output: stdout or any io.Writer             │
	└──────────────────────────────────────────────────┘

# Usage

Initializing the logger:

	import "github.com/sarkarghya/bocker/pkg/log"

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

Simple logging:

	log.Info("engine starting")
	log.Debug("checking snapshot root")
	log.Warn("cgroup controller already enabled")
	log.Error("failed to create veth pair")
	log.Fatal("snapshot root is not a btrfs mount") // exits process

Structured logging:

	log.Logger.Info().
		Str("container_id", "ps_101").
		Str("cmd", cmd).
		Msg("container started")

Entity-scoped loggers:

	clog := log.Logger.With().Str("container_id", id).Logger()
	clog.Error().Err(err).Msg("child exited non-zero")

# Log Levels

  - Debug: namespace/cgroup/netlink call tracing
  - Info: default production level — image/container lifecycle events
  - Warn: recoverable conditions (teardown of a half-built fabric, etc.)
  - Error: failed operations that still return to the caller
  - Fatal: unrecoverable startup errors (os.Exit(1))
*/
package log
