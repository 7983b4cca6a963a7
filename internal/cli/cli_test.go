package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/fnkit/internal/domain"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func initWorkspace(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "kit")
	out, _, err := runCLI(t, "init", root)
	require.NoError(t, err)
	require.Contains(t, out, "Initialized fnkit workspace at "+root)
	return root
}

func writeSuite(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, "suites", name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

// --- invoke ---

func TestInvoke_Samples(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"invoke", "divider", "3"}, "33\n"},
		{[]string{"invoke", "divider", "-3"}, "-33\n"},
		{[]string{"invoke", "md5", `"hello"`}, `"5d41402abc4b2a76b9719d911017c592"` + "\n"},
		{[]string{"invoke", "delay", "0"}, "0\n"},
		{[]string{"invoke", "counter", "5", "--counter-initial", "10"}, "10\n"},
		{[]string{"invoke", "repeater", `{"words":["a","b"],"counts":[2,0]}`}, `["a","a"]` + "\n"},
		{[]string{"invoke", "repeater", `{"words":["x"],"counts":[1000000000]}`, "--limit", "3"}, `["x","x","x"]` + "\n"},
	}

	for _, tc := range cases {
		t.Run(strings.Join(tc.args[1:], " "), func(t *testing.T) {
			out, _, err := runCLI(t, tc.args...)
			require.NoError(t, err)
			require.Equal(t, tc.want, out)
		})
	}
}

func TestInvoke_FunctionFailure(t *testing.T) {
	_, _, err := runCLI(t, "invoke", "divider", "0")
	require.Error(t, err)
	require.Contains(t, err.Error(), "arithmetic")
}

func TestInvoke_BadInput(t *testing.T) {
	_, _, err := runCLI(t, "invoke", "divider", "{")
	require.True(t, domain.IsKind(err, domain.KindInvalidInput), "got %v", err)

	_, _, err = runCLI(t, "invoke", "divider", `"three"`)
	require.True(t, domain.IsKind(err, domain.KindInvalidInput), "got %v", err)

	_, _, err = runCLI(t, "invoke", "nope", "1")
	require.True(t, domain.IsKind(err, domain.KindNotFound), "got %v", err)

	_, _, err = runCLI(t, "invoke", "divider")
	require.Error(t, err)
}

func TestInvoke_Latency(t *testing.T) {
	_, errOut, err := runCLI(t, "invoke", "delay", "20", "--latency")
	require.NoError(t, err)
	require.Contains(t, errOut, "latency: ")
}

// --- run ---

func TestRun_WorkspaceSuitesPretty(t *testing.T) {
	root := initWorkspace(t)

	out, _, err := runCLI(t, "run", "-w", root, "-s", "kit,state")
	require.NoError(t, err)

	require.Contains(t, out, "[  kit] Example suite for kit")
	require.Contains(t, out, "[state] Stateful Functions")
	require.Contains(t, out, "kit-0001")
	require.Contains(t, out, "PASS")
	require.Contains(t, out, "st-0001")
	require.NotContains(t, out, "smp-0001")
	require.Contains(t, out, "Passed:    3")
	require.Contains(t, out, "Run ID:")

	entries, err := os.ReadDir(filepath.Join(root, "runs"))
	require.NoError(t, err)
	var runs, index int
	for _, e := range entries {
		switch {
		case e.Name() == "index.jsonl":
			index++
		case strings.HasSuffix(e.Name(), ".json"):
			runs++
		}
	}
	require.Equal(t, 1, runs)
	require.Equal(t, 1, index)

	_, err = os.Stat(filepath.Join(root, ".fnkit", "logs", "fnkit.log"))
	require.NoError(t, err)
}

func TestRun_JSONNoSave(t *testing.T) {
	root := initWorkspace(t)

	out, _, err := runCLI(t, "run", "-w", root, "--format", "json", "--no-save", "--no-builtin")
	require.NoError(t, err)

	var payload struct {
		RunID string           `json:"run_id"`
		Run   domain.RunResult `json:"run"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Empty(t, payload.RunID)
	require.Len(t, payload.Run.Suites, 1)
	require.Equal(t, "kit", payload.Run.Suites[0].Name)
	require.False(t, payload.Run.Failed())

	entries, err := os.ReadDir(filepath.Join(root, "runs"))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRun_HardFailureExitsWithError(t *testing.T) {
	root := initWorkspace(t)
	writeSuite(t, root, "broken.yaml", `
name: broken
description: Wrong expectations
cases:
  - name: br-0001
    description: divider is not identity
    steps:
      - function: divider
        input: 100
        assert:
          equals: 100
  - name: br-0002
    description: optional mismatch
    optional: true
    steps:
      - function: md5
        input: ""
        assert:
          equals: "nope"
`)

	out, _, err := runCLI(t, "run", "-w", root, "-s", "broken", "--no-save")
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 hard failure(s)")
	require.Contains(t, out, "FAIL")
	require.Contains(t, out, "WARN")
	require.Contains(t, out, "expected 100, got 1")
}

func TestRun_InvalidSuiteFile(t *testing.T) {
	root := initWorkspace(t)
	writeSuite(t, root, "bad.yaml", "name: bad\n")

	_, _, err := runCLI(t, "run", "-w", root)
	require.True(t, domain.IsKind(err, domain.KindInvalidConfig), "got %v", err)
}

func TestRun_FocusFromConfig(t *testing.T) {
	root := initWorkspace(t)
	cfg := "fnkit:\n  focus:\n    tests: [smp-0003]\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "fnkit.yaml"), []byte(cfg), 0o644))

	out, _, err := runCLI(t, "run", "-w", root, "--no-save")
	require.NoError(t, err)
	require.Contains(t, out, "smp-0003")
	require.Contains(t, out, "Passed:    1")
}

func TestRun_UnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "run", "--format", "xml")
	require.Error(t, err)
}

func TestRun_MissingWorkspace(t *testing.T) {
	_, _, err := runCLI(t, "run", "-w", t.TempDir())
	require.True(t, domain.IsKind(err, domain.KindNotFound), "got %v", err)
}

// --- list / validate / version ---

func TestList(t *testing.T) {
	root := initWorkspace(t)

	out, _, err := runCLI(t, "list", "-w", root)
	require.NoError(t, err)
	require.Contains(t, out, "samples  Sample Function Contracts  (builtin)")
	require.Contains(t, out, "st-0001")
	require.Contains(t, out, "[optional]")
	require.Contains(t, out, "kit  Example suite for kit  ("+filepath.Join("suites", "example.yaml")+")")

	out, _, err = runCLI(t, "list", "-w", root, "--functions")
	require.NoError(t, err)
	require.Equal(t, "counter\ndelay\ndivider\nmd5\nrepeater\n", out)
}

func TestValidate(t *testing.T) {
	root := initWorkspace(t)

	out, _, err := runCLI(t, "validate", "-w", root)
	require.NoError(t, err)
	require.Equal(t, "OK (3 suite(s), 12 case(s))\n", out)

	writeSuite(t, root, "dup.yaml", `
name: dup
description: duplicates a built-in case
cases:
  - name: smp-0001
    description: clash
    steps:
      - function: md5
        input: x
`)
	_, _, err = runCLI(t, "validate", "-w", root)
	require.True(t, domain.IsKind(err, domain.KindInvalidConfig), "got %v", err)
	require.Contains(t, err.Error(), `case "smp-0001" is named like case "smp-0001"`)

	_, _, err = runCLI(t, "validate", "-w", root, "--no-builtin")
	require.NoError(t, err)
}

func TestDebugReportsLogPath(t *testing.T) {
	root := initWorkspace(t)
	want := filepath.Join(root, ".fnkit", "logs", "fnkit.log")

	_, stderr, err := runCLI(t, "validate", "-w", root, "--debug")
	require.NoError(t, err)
	require.Contains(t, stderr, "debug log: "+want)

	b, err := os.ReadFile(want)
	require.NoError(t, err)
	require.Contains(t, string(b), "logger.initialized")

	_, stderr, err = runCLI(t, "validate", "-w", root)
	require.NoError(t, err)
	require.NotContains(t, stderr, "debug log:")
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "fnkit "), out)
}

// --- console listener ---

func TestConsoleListener_PadsNames(t *testing.T) {
	var buf bytes.Buffer
	l := newConsoleListener(&buf)

	plan := domain.Plan{Suites: []domain.Suite{
		{Name: "s", Description: "short", Cases: []domain.Case{{Name: "a"}, {Name: "abcd"}}},
		{Name: "longer", Description: "long"},
	}}
	l.AboutToStart(plan)
	l.SuiteStart(plan.Suites[0])
	l.CaseDone(domain.CaseResult{Name: "a", Description: "first", Outcome: domain.OutcomePass})
	l.CaseDone(domain.CaseResult{Name: "abcd", Description: "second", Outcome: domain.OutcomeTechnicalError, Message: "boom"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "[     s] "), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "  [   a] "), lines[1])
	require.Contains(t, lines[1], "PASS")
	require.NotContains(t, lines[1], ":")
	require.Contains(t, lines[2], "ERROR")
	require.True(t, strings.HasSuffix(lines[2], "second: boom"), lines[2])
}

func TestPrintSummary(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	run := domain.RunResult{
		StartedAt: start,
		EndedAt:   start.Add(1500 * time.Millisecond),
		Suites: []domain.SuiteResult{{Cases: []domain.CaseResult{
			{Outcome: domain.OutcomePass},
			{Outcome: domain.OutcomeOptionalFailure},
		}}},
	}

	var buf bytes.Buffer
	require.NoError(t, printRun(&buf, run, "abc", "pretty"))
	s := buf.String()
	require.Contains(t, s, "Passed:    1")
	require.Contains(t, s, "Warnings:  1")
	require.Contains(t, s, "Duration:  1.5s")
	require.Contains(t, s, "Run ID:    abc")

	require.Error(t, printRun(&buf, run, "", "yaml"))
}
