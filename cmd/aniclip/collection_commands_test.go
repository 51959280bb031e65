package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"aniclip/internal/clipdb"
	"aniclip/internal/testsupport"
)

func TestImportMergesClipFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	source := filepath.Join(t.TempDir(), "incoming.txt")
	testsupport.WriteFile(t, source, testsupport.SampleClipFile+"garbage line\n")

	out, _, err := runCLI(t, []string{"import", source}, env.configPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "4 clips read, 1 rejected, 2 lists")

	out, _, err = runCLI(t, []string{"status", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var stats clipdb.Stats
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode status: %v\n%s", err, out)
	}
	if stats.Clips != 3 || stats.Lists != 1 || stats.Shows != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestShowsImportAndList(t *testing.T) {
	env := setupCLITestEnv(t)
	export := filepath.Join(t.TempDir(), "animelist.xml")
	testsupport.WriteFile(t, export, `<myanimelist>
	<anime><series_title><![CDATA[Mushishi]]></series_title></anime>
	<anime><series_title><![CDATA[Mushishi Zoku Shou]]></series_title></anime>
</myanimelist>`)

	out, _, err := runCLI(t, []string{"shows", "import", export}, env.configPath)
	if err != nil {
		t.Fatalf("shows import: %v", err)
	}
	requireContains(t, out, "Added 2 new shows")
	requireContains(t, testsupport.ReadFile(t, env.cfg.Paths.ShowsFile), "\nMushishi Zoku Shou\n")

	out, _, err = runCLI(t, []string{"shows", "ls", "--search", "zoku shou"}, env.configPath)
	if err != nil {
		t.Fatalf("shows ls: %v", err)
	}
	requireContains(t, out, "Mushishi Zoku Shou\t0")
	requireNotContains(t, out, "Mushishi\t0")

	if _, _, err := runCLI(t, []string{"shows", "import", filepath.Join(t.TempDir(), "shows.csv")}, env.configPath); err == nil {
		t.Fatal("expected error for unsupported show file")
	}
}

func TestTagsAddListRemove(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"tags", "add", "tag10", "tag9", "--group", "Numbers"}, env.configPath)
	if err != nil {
		t.Fatalf("tags add: %v", err)
	}
	requireContains(t, out, "Added 2 tags")
	requireContains(t, testsupport.ReadFile(t, env.cfg.Paths.TagsFile), "name=Numbers:tags=tag9|tag10\n")

	out, _, err = runCLI(t, []string{"tags", "ls"}, env.configPath)
	if err != nil {
		t.Fatalf("tags ls: %v", err)
	}
	requireContains(t, out, "General\t2\ttag9, tag10")
	requireContains(t, out, "Numbers\t2\ttag9, tag10")

	out, _, err = runCLI(t, []string{"tags", "rm", "tag9"}, env.configPath)
	if err != nil {
		t.Fatalf("tags rm: %v", err)
	}
	requireContains(t, out, "Removed 1 tags")

	out, _, err = runCLI(t, []string{"tags", "ls", "--group", "Numbers"}, env.configPath)
	if err != nil {
		t.Fatalf("tags ls: %v", err)
	}
	requireContains(t, out, "Numbers\t1\ttag10")
	requireNotContains(t, out, "General")
}

func TestListsListAndExport(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.cfg.Paths.ClipsFile, testsupport.SampleClipFile)

	out, _, err := runCLI(t, []string{"lists", "ls"}, env.configPath)
	if err != nil {
		t.Fatalf("lists ls: %v", err)
	}
	requireContains(t, out, "General\t2\t3\tyes")
	requireContains(t, out, "Favorites\t1\t1\tyes")

	dir := t.TempDir()
	out, _, err = runCLI(t, []string{"lists", "export", "Favorites", "--dir", dir}, env.configPath)
	if err != nil {
		t.Fatalf("lists export: %v", err)
	}
	requireContains(t, out, "Exported list \"Favorites\"")
	requireContains(t, testsupport.ReadFile(t, filepath.Join(dir, "Favorites.txt")), "List::Favorites\n{\n")

	if _, _, err := runCLI(t, []string{"lists", "export", "Missing", "--dir", dir}, env.configPath); err == nil {
		t.Fatal("expected error for unknown list")
	}
}

func TestBackupRunAndList(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.cfg.Paths.ClipsFile, testsupport.SampleClipFile)

	out, _, err := runCLI(t, []string{"backup"}, env.configPath)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	requireContains(t, out, "Backup written to "+env.cfg.Paths.BackupDir)

	out, _, err = runCLI(t, []string{"backup", "ls"}, env.configPath)
	if err != nil {
		t.Fatalf("backup ls: %v", err)
	}
	requireContains(t, out, "backup_")

	entries, err := os.ReadDir(env.cfg.Paths.BackupDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one backup directory: entries=%v err=%v", entries, err)
	}
}

func TestExportAndInspectSnapshot(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.cfg.Paths.ClipsFile, testsupport.SampleClipFile)

	out, _, err := runCLI(t, []string{"export"}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Exported snapshot ")
	requireContains(t, out, "clips\t3")
	if _, err := os.Stat(env.cfg.Export.SQLitePath); err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}

	out, _, err = runCLI(t, []string{"export", "inspect"}, env.configPath)
	if err != nil {
		t.Fatalf("export inspect: %v", err)
	}
	requireContains(t, out, "list_clips\t4")
}
