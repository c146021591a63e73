package cmd

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yejune/thai-i18n/internal/config"
	"github.com/yejune/thai-i18n/internal/hooks"
	"github.com/yejune/thai-i18n/internal/i18n"
)

const testConfig = `dictionaries:
  test: i18n/test.yaml
profiles:
  member:
    dictionary: test
`

const testDictionary = `ยืนยัน: common:buttons.submit
ยกเลิก: common:buttons.cancel
กำลังโหลด...: common:messages.loading
`

const depositPage = `import React, { useState } from 'react'
import api from '../api'

const Deposit: React.FC = () => {
  const [open, setOpen] = useState(false)
  return (
    <div>
      <button title="ยืนยัน">ยืนยัน</button>
      <span>{open ? 'ยกเลิก' : "กำลังโหลด..."}</span>
    </div>
  )
}
`

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// resetFlags restores every command flag variable to its default
func resetFlags() {
	rootConfig, rootLang, rootLogLevel, rootLogFormat, rootDir = "", "", "", "", ""
	translateDryRun, translateInteractive, translateNoBackup, translateFix = false, false, false, false
	translateGlobs, translateDict, translatePatch = nil, "", ""
	fixDryRun, fixInteractive, fixNoBackup, fixGlobs, fixPatch = false, false, false, nil, ""
	scanFormat, scanFail = "text", false
	profilesVerbose = false
	initHook, initUninstall = false, false
	backupDays, backupYes = 0, false
	i18n.SetLanguage("en")
}

// writeFile creates root/rel with its parent directories
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(data)
}

// setupTestProject creates a project with a test dictionary and one member page
func setupTestProject(t *testing.T) string {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	dir := t.TempDir()
	writeFile(t, dir, config.FileName, testConfig)
	writeFile(t, dir, "i18n/test.yaml", testDictionary)
	writeFile(t, dir, "src/pages/member/Deposit.tsx", depositPage)

	rootDir = dir
	return dir
}

// setupGitRepo initializes a git repository with one commit
func setupGitRepo(t *testing.T, dir string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	exec.Command("git", "-C", dir, "init").Run()
	exec.Command("git", "-C", dir, "config", "user.email", "test@test.com").Run()
	exec.Command("git", "-C", dir, "config", "user.name", "Test User").Run()
	exec.Command("git", "-C", dir, "add", ".").Run()
	exec.Command("git", "-C", dir, "commit", "-m", "Initial commit").Run()
}

// captureOutput captures stdout during command execution
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestExecute_Error(t *testing.T) {
	setupTestProject(t)

	code := 0
	origExit := osExit
	osExit = func(c int) { code = c }
	defer func() { osExit = origExit }()

	rootCmd.SetArgs([]string{"translate", "--dir", rootDir, "no-such-profile"})
	defer rootCmd.SetArgs(nil)

	captureOutput(Execute)
	assert.Equal(t, 1, code)
}

func TestLoadProject_FlagOverrides(t *testing.T) {
	setupTestProject(t)
	rootLang = "th"
	rootLogLevel = "debug"

	ctx, err := loadProject()
	require.NoError(t, err)
	assert.Equal(t, rootDir, ctx.Root)
	assert.Equal(t, "th", i18n.Language())
}

func TestLoadProject_InvalidLogFormat(t *testing.T) {
	setupTestProject(t)
	rootLogFormat = "xml"

	_, err := loadProject()
	assert.Error(t, err)
}

func TestLoadProject_InvalidConfig(t *testing.T) {
	dir := setupTestProject(t)
	writeFile(t, dir, config.FileName, "language: fr\n")

	_, err := loadProject()
	assert.Error(t, err)
}

func TestRunProfiles(t *testing.T) {
	setupTestProject(t)
	profilesVerbose = true

	output := captureOutput(func() {
		require.NoError(t, runProfiles(profilesCmd, nil))
	})

	assert.Contains(t, output, "member       table=test wrap=expression import=after-react hooks=react-fc")
	assert.Contains(t, output, "table=public")
	assert.Contains(t, output, "table=files wrap=call import=replace-react")
	assert.Contains(t, output, "  - src/pages/member/*.tsx")

	// sorted by name
	assert.Less(t, strings.Index(output, "components"), strings.Index(output, "files"))
}

func TestRunInit(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	dir := t.TempDir()
	rootDir = dir

	output := captureOutput(func() {
		require.NoError(t, runInit(initCmd, nil))
	})
	assert.Contains(t, output, "✓ Wrote .thai-i18n.yaml")
	assert.True(t, config.Exists(dir))

	cfg, err := config.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	output = captureOutput(func() {
		require.NoError(t, runInit(initCmd, nil))
	})
	assert.Contains(t, output, ".thai-i18n.yaml already exists")
}

func TestRunInit_HookOutsideRepo(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	rootDir = t.TempDir()
	initHook = true

	captureOutput(func() {
		err := runInit(initCmd, nil)
		assert.Error(t, err)
	})
}

func TestRunInit_Hook(t *testing.T) {
	dir := setupTestProject(t)
	setupGitRepo(t, dir)
	initHook = true

	output := captureOutput(func() {
		require.NoError(t, runInit(initCmd, nil))
	})
	assert.Contains(t, output, "✓ Git hooks installed")
	assert.True(t, hooks.IsInstalled(dir))
	assert.Contains(t, readFile(t, dir, ".gitignore"), ".thai-i18n/")

	output = captureOutput(func() {
		require.NoError(t, runInit(initCmd, nil))
	})
	assert.Contains(t, output, "Git hooks already installed.")

	initHook = false
	initUninstall = true
	output = captureOutput(func() {
		require.NoError(t, runInit(initCmd, nil))
	})
	assert.Contains(t, output, "✓ Git hooks uninstalled")
	assert.False(t, hooks.IsInstalled(dir))
}
