// Package logging configures the engine's shared loggers. There are two:
// the general engine logger and a dedicated search-trace logger, kept
// separate so per-node search tracing can be silenced independently of
// ordinary engine diagnostics.
package logging

import (
	"os"
	"sync"

	. "github.com/op/go-logging"
)

var (
	mu         sync.Mutex
	engineLog  *Logger
	searchLog  *Logger
	backendSet bool
)

// GetLog returns the shared engine logger, configuring the backend on
// first use.
func GetLog() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if engineLog == nil {
		setupBackend()
		engineLog = MustGetLogger("engine")
	}
	return engineLog
}

// GetSearchLog returns the shared search-trace logger.
func GetSearchLog() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if searchLog == nil {
		setupBackend()
		searchLog = MustGetLogger("search")
	}
	return searchLog
}

// SetLevelName sets the log level for both loggers by name, e.g. "INFO", "DEBUG".
func SetLevelName(levelName string) {
	lvl, err := LogLevel(levelName)
	if err != nil {
		return
	}
	SetLevel(lvl, "engine")
	SetLevel(lvl, "search")
}

func setupBackend() {
	if backendSet {
		return
	}
	backend := NewLogBackend(os.Stdout, "", 0)
	format := MustStringFormatter(
		`%{time:15:04:05.000} %{shortfile}:%{shortfunc} %{level:7s}:  %{message}`,
	)
	backendFormatter := NewBackendFormatter(backend, format)
	leveled := AddModuleLevel(backendFormatter)
	leveled.SetLevel(INFO, "")
	SetBackend(leveled)
	backendSet = true
}
