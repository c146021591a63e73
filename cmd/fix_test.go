package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardRel = "src/components/Card.tsx"

const cardComponent = `const items = [{ label: {t("common:x")} }]
`

func TestRunFix(t *testing.T) {
	dir := setupTestProject(t)
	writeFile(t, dir, cardRel, cardComponent)

	output := captureOutput(func() {
		require.NoError(t, runFix(fixCmd, nil))
	})

	assert.Contains(t, output, "[all] Found 2 files")
	assert.Contains(t, output, "Processing "+cardRel+"... ✓ Fixed")
	assert.Contains(t, output, "Processing "+depositRel+"... - No changes")
	assert.Contains(t, output, "Completed! 1/2 files fixed")
	assert.Contains(t, output, "  object-close ×1")
	assert.Contains(t, output, "  object-value ×1")

	assert.Equal(t, `const items = [{ label: t("common:x") }]
`, readFile(t, dir, cardRel))
}

func TestRunFix_SingleSet(t *testing.T) {
	dir := setupTestProject(t)
	writeFile(t, dir, cardRel, cardComponent)

	output := captureOutput(func() {
		require.NoError(t, runFix(fixCmd, []string{"braces"}))
	})

	assert.Contains(t, output, "[braces] Found 2 files")
	assert.NotContains(t, output, "object-value")
	assert.Equal(t, `const items = [{ label: {t("common:x") }]
`, readFile(t, dir, cardRel))
}

func TestRunFix_GlobOverride(t *testing.T) {
	dir := setupTestProject(t)
	writeFile(t, dir, "lib/Card.tsx", cardComponent)
	fixGlobs = []string{"lib/*.tsx"}

	output := captureOutput(func() {
		require.NoError(t, runFix(fixCmd, []string{"syntax"}))
	})

	assert.Contains(t, output, "[syntax] Found 1 files")
	// rule sets apply outside their own globs when --glob is given
	assert.Contains(t, readFile(t, dir, "lib/Card.tsx"), `label: t("common:x")`)
}

func TestRunFix_DryRun(t *testing.T) {
	dir := setupTestProject(t)
	writeFile(t, dir, cardRel, cardComponent)
	fixDryRun = true

	output := captureOutput(func() {
		require.NoError(t, runFix(fixCmd, nil))
	})

	assert.Contains(t, output, "~ Would update (+1 -1)")
	assert.Contains(t, output, `+const items = [{ label: t("common:x") }]`)
	assert.Equal(t, cardComponent, readFile(t, dir, cardRel))
}

func TestRunFix_UnknownSet(t *testing.T) {
	setupTestProject(t)

	err := runFix(fixCmd, []string{"imports"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rule set: imports")
}

func TestRuleSets(t *testing.T) {
	sets, err := ruleSets("all")
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "braces", sets[0].Name)
	assert.Equal(t, "syntax", sets[1].Name)

	sets, err = ruleSets("syntax")
	require.NoError(t, err)
	require.Len(t, sets, 1)
}

func TestRepairContent(t *testing.T) {
	sets, err := ruleSets("all")
	require.NoError(t, err)

	out, hits := repairContent(cardRel, cardComponent, sets)
	assert.Equal(t, `const items = [{ label: t("common:x") }]
`, out)
	assert.Len(t, hits, 2)

	out, hits = repairContent(cardRel, "plain text\n", sets)
	assert.Equal(t, "plain text\n", out)
	assert.Empty(t, hits)
}
