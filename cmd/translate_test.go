package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const depositRel = "src/pages/member/Deposit.tsx"

func TestRunTranslate(t *testing.T) {
	dir := setupTestProject(t)

	output := captureOutput(func() {
		require.NoError(t, runTranslate(translateCmd, []string{"member"}))
	})

	assert.Contains(t, output, "[member] Found 1 files")
	assert.Contains(t, output, "Processing "+depositRel+"... ✓ Updated")
	assert.Contains(t, output, "Completed! 1/1 files updated")

	content := readFile(t, dir, depositRel)
	assert.Contains(t, content, "import { useTranslation } from 'react-i18next'")
	assert.Contains(t, content, "const { t } = useTranslation()")
	assert.Contains(t, content, `<button title={t("common:buttons.submit")}>{t("common:buttons.submit")}</button>`)
	assert.NotContains(t, content, "ยืนยัน")

	backups, err := filepath.Glob(filepath.Join(dir, ".thai-i18n", "backup", "modified", "*", "*", "*", "src", "pages", "member", "Deposit.*.tsx"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	// second run has nothing left to replace
	output = captureOutput(func() {
		require.NoError(t, runTranslate(translateCmd, []string{"member"}))
	})
	assert.Contains(t, output, "- No changes")
	assert.Contains(t, output, "Completed! 0/1 files updated")
}

func TestRunTranslate_DefaultProfiles(t *testing.T) {
	setupTestProject(t)

	output := captureOutput(func() {
		require.NoError(t, runTranslate(translateCmd, nil))
	})

	member := strings.Index(output, "[member]")
	public := strings.Index(output, "[public] Found 0 files")
	components := strings.Index(output, "[components] Found 0 files")
	require.True(t, member >= 0 && public >= 0 && components >= 0, output)
	assert.Less(t, member, public)
	assert.Less(t, public, components)
	assert.NotContains(t, output, "[files]")
	assert.Contains(t, output, "Total: 1/1 files updated across 3 profiles")
}

func TestRunTranslate_DryRun(t *testing.T) {
	dir := setupTestProject(t)
	translateDryRun = true

	output := captureOutput(func() {
		require.NoError(t, runTranslate(translateCmd, []string{"member"}))
	})

	assert.Contains(t, output, "Dry run: no files will be written")
	assert.Contains(t, output, "~ Would update")
	assert.Contains(t, output, "--- a/"+depositRel)
	assert.Contains(t, output, "+++ b/"+depositRel)
	assert.Contains(t, output, `+      <button title={t("common:buttons.submit")}>`)
	assert.Contains(t, output, "Completed! 1/1 files updated")

	assert.Equal(t, depositPage, readFile(t, dir, depositRel))
	assert.NoDirExists(t, filepath.Join(dir, ".thai-i18n"))
}

func TestRunTranslate_NoBackupAndPatch(t *testing.T) {
	dir := setupTestProject(t)
	translateNoBackup = true
	translatePatch = filepath.Join(dir, "out.patch")

	captureOutput(func() {
		require.NoError(t, runTranslate(translateCmd, []string{"member"}))
	})

	assert.NoDirExists(t, filepath.Join(dir, ".thai-i18n"))
	p := readFile(t, dir, "out.patch")
	assert.Contains(t, p, "--- a/"+depositRel)
	assert.Contains(t, p, `+import { useTranslation } from 'react-i18next'`)
}

func TestRunTranslate_Fix(t *testing.T) {
	dir := setupTestProject(t)
	translateFix = true

	output := captureOutput(func() {
		require.NoError(t, runTranslate(translateCmd, []string{"member"}))
	})
	assert.Contains(t, output, "✓ Updated")

	content := readFile(t, dir, depositRel)
	assert.NotContains(t, content, `)}}`)
	assert.Contains(t, content, `: t("common:messages.loading")`)
}

func TestRunTranslate_GlobAndDictOverride(t *testing.T) {
	dir := setupTestProject(t)
	writeFile(t, dir, "src/pages/help/Faq.tsx", `import React from 'react'

const Faq: React.FC = () => {
  return <p>ยกเลิก</p>
}
`)
	translateGlobs = []string{"src/pages/help/*.tsx"}
	translateDict = "test"

	output := captureOutput(func() {
		require.NoError(t, runTranslate(translateCmd, []string{"public"}))
	})
	assert.Contains(t, output, "[public] Found 1 files")

	assert.Contains(t, readFile(t, dir, "src/pages/help/Faq.tsx"), `<p>{t("common:buttons.cancel")}</p>`)
	assert.Equal(t, depositPage, readFile(t, dir, depositRel))
}

func TestRunTranslate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
		args  []string
	}{
		{"unknown profile", func() {}, []string{"admin"}},
		{"unknown dictionary", func() { translateDict = "missing" }, []string{"member"}},
		{"unknown profile after a known one", func() {}, []string{"member", "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestProject(t)
			tt.setup()

			captureOutput(func() {
				assert.Error(t, runTranslate(translateCmd, tt.args))
			})
		})
	}
}
