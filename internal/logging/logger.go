package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aniclip/internal/config"
)

const (
	// LogFileName points at the newest session log inside the log directory.
	LogFileName = "aniclip.log"
	// SessionLogPattern matches the per-session log files.
	SessionLogPattern = "aniclip-*.log"

	sessionTimeLayout = "20060102T150405.000Z"
)

// SessionLogPath returns the log file for a session started at start.
func SessionLogPath(dir string, start time.Time, sessionID string) string {
	name := "aniclip-" + start.UTC().Format(sessionTimeLayout)
	if id := strings.TrimSpace(sessionID); id != "" {
		if len(id) > 8 {
			id = id[:8]
		}
		name += "-" + id
	}
	return filepath.Join(dir, name+".log")
}

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	// SessionID and Command, when set, are attached to every record.
	SessionID string
	Command   string
}

// New constructs a slog logger using the provided options. Output defaults to
// stderr so command output on stdout stays clean.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	outputWriter, err := openWriters(defaultSlice(opts.OutputPaths, []string{"stderr"}))
	if err != nil {
		return nil, err
	}

	addSource := level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = newJSONHandler(outputWriter, levelVar, addSource)
	case "console":
		handler = newPrettyHandler(outputWriter, levelVar, addSource)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	var stamp []slog.Attr
	if id := strings.TrimSpace(opts.SessionID); id != "" {
		stamp = append(stamp, slog.String(FieldSessionID, id))
	}
	if command := strings.TrimSpace(opts.Command); command != "" {
		stamp = append(stamp, slog.String(FieldCommand, command))
	}
	handler = newStampHandler(handler, stamp...)

	return slog.New(handler), nil
}

// NewFromConfig creates a logger using application config defaults. Records
// go to a new session file inside the configured log directory, which
// LogFileName then points at; echo also copies them to stderr. Without a log
// directory stderr is always used. The session file path is returned so it
// can be excluded from pruning.
func NewFromConfig(cfg *config.Config, sessionID, command string, echo bool) (*slog.Logger, string, error) {
	if cfg == nil {
		logger, err := New(Options{Level: "info", Format: "console", SessionID: sessionID, Command: command})
		return logger, "", err
	}

	var outputPaths []string
	if echo || cfg.Paths.LogDir == "" {
		outputPaths = append(outputPaths, "stderr")
	}
	var logPath string
	if cfg.Paths.LogDir != "" {
		if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
			return nil, "", fmt.Errorf("ensure log directory: %w", err)
		}
		logPath = SessionLogPath(cfg.Paths.LogDir, time.Now(), sessionID)
		outputPaths = append(outputPaths, logPath)
	}
	logger, err := New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputPaths,
		SessionID:   sessionID,
		Command:     command,
	})
	if err != nil {
		return nil, "", err
	}
	if logPath != "" {
		if err := pointCurrentLog(cfg.Paths.LogDir, logPath); err != nil {
			WarnWithContext(logger, "log pointer not updated", "log_pointer_failed",
				String(FieldPath, filepath.Join(cfg.Paths.LogDir, LogFileName)),
				Error(err),
				String(FieldImpact, "aniclip logs shows an older session"),
			)
		}
	}
	return logger, logPath, nil
}

// pointCurrentLog makes LogFileName refer to target, by symlink where the
// filesystem allows it and by hard link otherwise.
func pointCurrentLog(dir, target string) error {
	current := filepath.Join(dir, LogFileName)
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove log pointer: %w", err)
	}
	if err := os.Symlink(filepath.Base(target), current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaultSlice(value []string, fallback []string) []string {
	if len(value) == 0 {
		cp := make([]string, len(fallback))
		copy(cp, fallback)
		return cp
	}
	cp := make([]string, len(value))
	copy(cp, value)
	return cp
}

func openWriters(outputPaths []string) (io.Writer, error) {
	seen := map[string]struct{}{}
	var writers []io.Writer

	for _, path := range outputPaths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}

		switch trimmed {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := ensureLogDir(trimmed); err != nil {
				return nil, err
			}
			file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", trimmed, err)
			}
			writers = append(writers, file)
		}
	}

	if len(writers) == 0 {
		return os.Stderr, nil
	}

	if len(writers) == 1 {
		return writers[0], nil
	}
	return io.MultiWriter(writers...), nil
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
