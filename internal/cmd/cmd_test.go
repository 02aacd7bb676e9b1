package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSymphony/forge/internal/lessons"
	"github.com/DevSymphony/forge/internal/llm"
	"github.com/DevSymphony/forge/internal/samples"
	"github.com/DevSymphony/forge/internal/ui"
)

// run executes the root command in a clean temporary project.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	verbose, catalogPath = false, ""
	suggestFile, suggestPrompt, suggestWrite, suggestUnified, suggestYes = "", "", false, false, false
	lintFile, lintJSON = "", false
	impactOriginal, impactImproved, impactExplanation = "", "", ""
	diffUnified = false
	lessonsList, lessonsIndex, lessonsPrompt = false, 0, ""

	old := ui.ColorEnabled
	ui.ColorEnabled = func() bool { return false }
	t.Cleanup(func() { ui.ColorEnabled = old })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func inTempProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(llm.EnvProvider, llm.ProviderNone)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "forge version 1.2.3\n", out)
}

func TestSuggest_RuleFallback(t *testing.T) {
	dir := inTempProject(t)
	movement, _ := samples.Get("movement")
	path := writeFile(t, dir, "scene.js", movement.Code)

	out, err := run(t, "suggest", "-f", path, "-p", "optimize movement")
	require.NoError(t, err)
	assert.Contains(t, out, "[RULE] optimize movement")
	assert.Contains(t, out, "+ ")
	assert.Contains(t, out, "setVelocityX")
	assert.Contains(t, out, "CPU -15% | Memory +0% | FPS +5")
	assert.Contains(t, out, "[INFO] Lesson:")

	// Without --write the file is untouched.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, movement.Code, string(data))

	_, err = os.Stat(filepath.Join(dir, ".forge"))
	assert.True(t, os.IsNotExist(err), "no project directory is created outside a project")
}

func TestSuggest_NoMatch(t *testing.T) {
	dir := inTempProject(t)
	path := writeFile(t, dir, "scene.js", "const x = 1;")

	out, err := run(t, "suggest", "-f", path, "-p", "make it pretty")
	require.NoError(t, err)
	assert.Contains(t, out, "No transformation matched")
	assert.Contains(t, out, "optimize movement, add collision")
	assert.NotContains(t, out, "Lesson:")
}

func TestSuggest_Write(t *testing.T) {
	dir := inTempProject(t)
	path := writeFile(t, dir, "scene.js", "this.sprite.setVelocity(1, 2);")

	out, err := run(t, "suggest", "-f", path, "-p", "optimize movement", "--write", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "setVelocityX(1)")
}

func TestSuggest_Errors(t *testing.T) {
	dir := inTempProject(t)
	path := writeFile(t, dir, "blank.js", "   ")

	_, err := run(t, "suggest", "-f", path, "-p", "optimize movement")
	assert.ErrorContains(t, err, "malformed input")

	_, err = run(t, "suggest", "-f", "-", "-p", "optimize movement", "--write")
	assert.ErrorContains(t, err, "stdin")

	_, err = run(t, "suggest", "-f", filepath.Join(dir, "missing.js"), "-p", "x")
	assert.Error(t, err)
}

func TestSuggest_Catalog(t *testing.T) {
	dir := inTempProject(t)
	path := writeFile(t, dir, "scene.js", "this.jump = false;")
	catalog := writeFile(t, dir, "rules.yaml", "transformations:\n  - key: add jump\n    pattern: 'this\\.jump = false;'\n    replacement: 'this.jump = true;'\n    explanation: Enabled jumping\n")

	out, err := run(t, "suggest", "--catalog", catalog, "-f", path, "-p", "add jump")
	require.NoError(t, err)
	assert.Contains(t, out, "[RULE] add jump")
	assert.Contains(t, out, "Enabled jumping")
	assert.Contains(t, out, "+ this.jump = true;")
}

func TestLint(t *testing.T) {
	dir := inTempProject(t)

	t.Run("warnings exit 1", func(t *testing.T) {
		path := writeFile(t, dir, "enemy.js", "const e = new Enemy();")
		out, err := run(t, "lint", "-f", path)
		var exit *exitError
		require.ErrorAs(t, err, &exit)
		assert.Equal(t, 1, exit.code)
		assert.Contains(t, out, "[high]")
	})

	t.Run("clean", func(t *testing.T) {
		path := writeFile(t, dir, "clean.js", "const x = 1;")
		out, err := run(t, "lint", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "[OK] No issues detected")
	})

	t.Run("json", func(t *testing.T) {
		path := writeFile(t, dir, "json.js", "this.player.x = 1;")
		out, _ := run(t, "lint", "-f", path, "--json")
		var report struct {
			Warnings []struct {
				Rule string `json:"rule"`
			} `json:"warnings"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		require.Len(t, report.Warnings, 1)
		assert.Equal(t, "directSetXY", report.Warnings[0].Rule)
	})
}

func TestImpact(t *testing.T) {
	dir := inTempProject(t)
	original := writeFile(t, dir, "a.js", "")
	improved := writeFile(t, dir, "b.js", "sprite.destroy();")

	out, err := run(t, "impact", "--original", original, "--improved", improved)
	require.NoError(t, err)
	assert.Equal(t, "CPU +0% | Memory -20% | FPS +0\n", out)
}

func TestDiff(t *testing.T) {
	dir := inTempProject(t)
	a := writeFile(t, dir, "a.js", "one\ntwo")
	b := writeFile(t, dir, "b.js", "one\nthree")

	out, err := run(t, "diff", a, b)
	require.NoError(t, err)
	assert.Equal(t, "  one\n- two\n+ three\n", out)

	out, err = run(t, "diff", a, b, "--unified")
	require.NoError(t, err)
	assert.Contains(t, out, "-two\n+three\n")
	assert.Contains(t, out, "1 addition(s), 1 deletion(s)")
}

func TestLessons(t *testing.T) {
	inTempProject(t)

	out, err := run(t, "lessons", "--list")
	require.NoError(t, err)
	assert.Equal(t, lessons.Len(), strings.Count(out, "\n"))

	// Without a terminal the selected card is printed once.
	out, err = run(t, "lessons", "--prompt", "add collision")
	require.NoError(t, err)
	want, _ := lessons.Get(lessons.MatchPrompt("add collision"))
	assert.Contains(t, out, want.Title)
	assert.Contains(t, out, "Before:")

	_, err = run(t, "lessons", "--index", "99")
	assert.Error(t, err)
}

func TestExamples(t *testing.T) {
	inTempProject(t)

	out, err := run(t, "examples")
	require.NoError(t, err)
	for _, name := range samples.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "demo")

	out, err = run(t, "examples", "collision")
	require.NoError(t, err)
	collision, _ := samples.Get("collision")
	assert.Equal(t, collision.Code+"\n", out)

	out, err = run(t, "examples", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "[DEMO] "+samples.Demo().Title)
	assert.Contains(t, out, "before")

	_, err = run(t, "examples", "nope")
	assert.ErrorContains(t, err, "unknown example")
}

func TestPrintLLMStatus(t *testing.T) {
	old := ui.ColorEnabled
	ui.ColorEnabled = func() bool { return false }
	t.Cleanup(func() { ui.ColorEnabled = old })

	var out bytes.Buffer
	printLLMStatus(&out, llm.Config{})
	assert.Contains(t, out.String(), "Text generation disabled")

	out.Reset()
	printLLMStatus(&out, llm.Config{Provider: "nope"})
	assert.Contains(t, out.String(), `Unknown provider "nope"`)
}

func TestCleanAPIKey(t *testing.T) {
	assert.Equal(t, "hf_abc123", cleanAPIKey("  hf_abc\t123\r\n"))
	assert.Equal(t, "", cleanAPIKey(" \n"))
}

func TestEnsureGitignore(t *testing.T) {
	dir := inTempProject(t)
	writeFile(t, dir, ".gitignore", "node_modules\n")

	require.NoError(t, ensureGitignore(".forge/.env"))
	require.NoError(t, ensureGitignore(".forge/.env"))

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), ".forge/.env"))
	assert.True(t, strings.HasPrefix(string(data), "node_modules\n"))
}
