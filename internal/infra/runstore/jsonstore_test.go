package runstore

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aalvaropc/fnkit/internal/domain"
)

func sampleRun(start time.Time) domain.RunResult {
	return domain.RunResult{
		StartedAt: start,
		EndedAt:   start.Add(2 * time.Second),
		Suites: []domain.SuiteResult{
			{
				Name:        "samples",
				Description: "Sample Function Contracts",
				Cases: []domain.CaseResult{
					{
						Suite:   "samples",
						Name:    "smp-0003",
						Outcome: domain.OutcomePass,
						Steps: []domain.StepResult{
							{
								Name:     "divider",
								Function: "divider",
								Invocations: []domain.InvocationResult{
									{Function: "divider", Output: json.RawMessage(`33`), LatencyMS: 1},
								},
								Assertions: []domain.AssertionResult{
									{Name: "equals", Passed: true, Message: "ok"},
								},
							},
						},
					},
				},
			},
			{
				Name: "State Suite",
				Cases: []domain.CaseResult{
					{Suite: "State Suite", Name: "st-0001", Optional: true, Outcome: domain.OutcomeOptionalFailure},
				},
			},
		},
	}
}

func TestSaveRun_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()

	cfg := domain.DefaultConfig()
	cfg.Paths.RunsDir = "artifacts"

	store := NewJSONStore(tmp, cfg)

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id, err := store.SaveRun(sampleRun(start))
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid id, got=%q: %v", id, err)
	}

	wantFile := filepath.Join(tmp, "artifacts", "20260203T101112Z_samples-state-suite.json")
	b, err := os.ReadFile(wantFile)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var decoded domain.RunResult
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.ID != id {
		t.Fatalf("expected stored id=%s, got=%s", id, decoded.ID)
	}
	if len(decoded.Suites) != 2 {
		t.Fatalf("expected 2 suites, got=%d", len(decoded.Suites))
	}
	inv := decoded.Suites[0].Cases[0].Steps[0].Invocations[0]
	if string(inv.Output) != "33" {
		t.Fatalf("expected output 33, got=%s", inv.Output)
	}

	if _, err := os.Stat(wantFile + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected tmp file to be gone, stat err=%v", err)
	}
}

func TestSaveRun_KeepsExistingIDAndFillsStart(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

	store := NewJSONStore(tmp, domain.DefaultConfig(),
		WithNow(func() time.Time { return now }),
		WithIDGenerator(func() string { t.Fatalf("generator must not be called"); return "" }),
	)

	run := domain.RunResult{ID: "fixed"}
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if id != "fixed" {
		t.Fatalf("expected id=fixed, got=%s", id)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "runs", "20260506T070809Z_run.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var decoded domain.RunResult
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.StartedAt.Equal(now) {
		t.Fatalf("expected started_at=%s, got=%s", now, decoded.StartedAt)
	}
}

func TestSaveRun_WritesIndex(t *testing.T) {
	tmp := t.TempDir()
	ids := []string{"a", "b"}
	store := NewJSONStore(tmp, domain.DefaultConfig(),
		WithIndex(true),
		WithIDGenerator(func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		}),
	)

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	for i := range 2 {
		if _, err := store.SaveRun(sampleRun(start.Add(time.Duration(i) * time.Second))); err != nil {
			t.Fatalf("SaveRun error: %v", err)
		}
	}

	f, err := os.Open(filepath.Join(tmp, "runs", "index.jsonl"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()

	type line struct {
		ID     string                 `json:"id"`
		File   string                 `json:"file"`
		Suites []string               `json:"suites"`
		Tally  map[domain.Outcome]int `json:"tally"`
		Failed bool                   `json:"failed"`
	}
	var got []line
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var l line
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			t.Fatalf("unmarshal index line: %v", err)
		}
		got = append(got, l)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 index lines, got=%d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected ids: %+v", got)
	}
	if got[1].File != "20260203T101113Z_samples-state-suite.json" {
		t.Fatalf("unexpected file: %s", got[1].File)
	}
	if got[0].Failed {
		t.Fatalf("optional failures must not fail the run")
	}
	if got[0].Tally[domain.OutcomePass] != 1 || got[0].Tally[domain.OutcomeOptionalFailure] != 1 {
		t.Fatalf("unexpected tally: %v", got[0].Tally)
	}
}

func TestSaveRun_RunsDirIsAFile(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, "runs"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := NewJSONStore(tmp, domain.DefaultConfig()).SaveRun(domain.RunResult{})
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected execution error, got=%v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Demo API":        "demo-api",
		"  samples  ":     "samples",
		"a__b..c":         "a-b-c",
		"Ünïcode/Slashes": "n-code-slashes",
		"---":             "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q): expected %q, got %q", in, want, got)
		}
	}
}
