package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"aniclip/internal/logging"
	"aniclip/internal/testsupport"
)

func TestLogsPrintsTrailingLines(t *testing.T) {
	env := setupCLITestEnv(t)
	logPath := filepath.Join(env.cfg.Paths.LogDir, logging.LogFileName)
	testsupport.WriteFile(t, logPath, "first entry\nsecond entry\nthird entry\n")

	out, _, err := runCLI(t, []string{"logs", "-n", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireNotContains(t, out, "first entry")
	requireContains(t, out, "second entry")
	requireContains(t, out, "third entry")
}

func TestLogsWithoutLogFile(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"logs"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestCommandsLogPerSessionAndPruneExpired(t *testing.T) {
	env := setupCLITestEnv(t)
	expired := logging.SessionLogPath(env.cfg.Paths.LogDir, time.Now().AddDate(0, 0, -90), "expired")
	testsupport.WriteFile(t, expired, "old session\n")
	past := time.Now().AddDate(0, 0, -90)
	if err := os.Chtimes(expired, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if _, _, err := runCLI(t, []string{"status"}, env.configPath); err != nil {
		t.Fatalf("status: %v", err)
	}
	if _, err := os.Stat(expired); !os.IsNotExist(err) {
		t.Fatalf("expected expired session log pruned, stat err=%v", err)
	}
	sessions, err := filepath.Glob(filepath.Join(env.cfg.Paths.LogDir, logging.SessionLogPattern))
	if err != nil || len(sessions) != 1 {
		t.Fatalf("expected one live session log, got %v (%v)", sessions, err)
	}

	out, _, err := runCLI(t, []string{"logs", "-n", "50"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "clip database opened")
	requireContains(t, out, `command="aniclip status"`)
}
