package diagnostics_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/observability"
	"github.com/JaimeStill/scribe/internal/agents"
	"github.com/JaimeStill/scribe/internal/diagnostics"
	"github.com/JaimeStill/scribe/internal/history"
	"github.com/JaimeStill/scribe/internal/models"
	"github.com/google/uuid"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAgents struct {
	list []agents.Agent
	err  error
}

func (f *fakeAgents) ListByOwner(_ context.Context, owner string) ([]agents.Agent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var owned []agents.Agent
	for _, a := range f.list {
		if a.Owner == owner {
			owned = append(owned, a)
		}
	}
	return owned, nil
}

type fakeDocuments struct {
	texts map[string]string
	err   error
}

func (f *fakeDocuments) Resolve(_ context.Context, names []string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if t, ok := f.texts[n]; ok {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n"), nil
}

type call struct {
	prompt      string
	model       models.ID
	temperature float64
}

type fakeInvoker struct {
	mu      sync.Mutex
	calls   []call
	respond func(ctx context.Context, c call) models.Result
}

func (f *fakeInvoker) Invoke(ctx context.Context, prompt string, id models.ID, temperature float64) models.Result {
	c := call{prompt: prompt, model: id, temperature: temperature}

	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	if f.respond != nil {
		return f.respond(ctx, c)
	}
	return models.Result{Text: "out:" + prompt, Model: id, Attempts: 1}
}

func (f *fakeInvoker) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []history.RecordCommand
	failAt  int
	err     error
}

func (f *fakeRecorder) Record(ctx context.Context, cmd history.RecordCommand) (*history.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil && len(f.entries)+1 == f.failAt {
		return nil, f.err
	}
	f.entries = append(f.entries, cmd)
	return &history.Entry{ID: uuid.New(), Owner: cmd.Owner, InputText: cmd.InputText}, nil
}

type trackedRun struct {
	status diagnostics.RunStatus
	err    error
}

type recordingTracker struct {
	diagnostics.Tracker
	mu     sync.Mutex
	runs   []trackedRun
	events []observability.Event
}

func newRecordingTracker() *recordingTracker {
	return &recordingTracker{Tracker: diagnostics.NoopTracker()}
}

func (r *recordingTracker) Complete(_ context.Context, _ uuid.UUID, status diagnostics.RunStatus, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, trackedRun{status: status, err: err})
	return nil
}

func (r *recordingTracker) Observer(uuid.UUID) observability.Observer {
	return r
}

func (r *recordingTracker) OnEvent(_ context.Context, e observability.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingTracker) nodeStarts() map[string]bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	nodes := make(map[string]bool)
	for _, e := range r.events {
		if e.Type != observability.EventNodeStart {
			continue
		}
		if n, ok := e.Data["node"].(string); ok {
			nodes[n] = true
		}
	}
	return nodes
}

type harness struct {
	agents   *fakeAgents
	docs     *fakeDocuments
	invoker  *fakeInvoker
	recorder *fakeRecorder
	tracker  *recordingTracker
}

func newHarness(list ...agents.Agent) *harness {
	return &harness{
		agents:   &fakeAgents{list: list},
		docs:     &fakeDocuments{texts: map[string]string{}},
		invoker:  &fakeInvoker{},
		recorder: &fakeRecorder{},
		tracker:  newRecordingTracker(),
	}
}

func (h *harness) system(t *testing.T, cfg diagnostics.Config) diagnostics.System {
	t.Helper()
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return diagnostics.New(cfg, diagnostics.Deps{
		Agents:    h.agents,
		Documents: h.docs,
		Invoker:   h.invoker,
		History:   h.recorder,
		Tracker:   h.tracker,
	}, discard())
}

func ptr[T any](v T) *T {
	return &v
}

func agent(name, prompt string) agents.Agent {
	return agents.Agent{
		ID:          uuid.New(),
		Owner:       "ana",
		Name:        name,
		Prompt:      prompt,
		Model:       models.GPT4o,
		Temperature: 0.5,
	}
}

func TestDiagnose_NoAgents(t *testing.T) {
	h := newHarness()
	sys := h.system(t, diagnostics.Config{})

	result, err := sys.Diagnose(context.Background(), diagnostics.Request{
		OwnerIdentity:  "ana",
		TranscriptText: "what time is it",
	})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	wantPrompt := "Answer me: 'what time is it'"

	if len(result.Responses) != 1 || result.Responses[0] != "out:"+wantPrompt {
		t.Errorf("Responses = %q", result.Responses)
	}

	if len(h.invoker.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(h.invoker.calls))
	}
	c := h.invoker.calls[0]
	if c.prompt != wantPrompt || c.model != models.GPT4oMini || c.temperature != 0.2 {
		t.Errorf("call = %+v", c)
	}

	if len(h.recorder.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(h.recorder.entries))
	}
	e := h.recorder.entries[0]
	if e.InputText != wantPrompt || e.Owner != "ana" || e.AgentID != nil {
		t.Errorf("entry = %+v", e)
	}

	if !h.tracker.nodeStarts()["default"] {
		t.Error("default node was not observed")
	}
}

func TestDiagnose_AgentsInOrder(t *testing.T) {
	first := agent("Summary", "unused")
	first.IncludeTranscript = true
	first.ContextDocs = []string{"style"}

	second := agent("Actions", "List action items")
	second.ConnectedAgents = []string{"Summary"}
	second.Model = models.Gemini15Flash
	second.Temperature = 0

	third := agent("Tone", "Rate the tone")
	third.IncludeTranscript = true

	h := newHarness(first, second, third)
	h.docs.texts["style"] = "Be brief."
	sys := h.system(t, diagnostics.Config{})

	result, err := sys.Diagnose(context.Background(), diagnostics.Request{
		OwnerIdentity:  "ana",
		TranscriptText: "we ship friday",
		FreeContext:    "team sync",
	})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	wantPrompts := []string{
		"Having context:\n'Be brief.\nteam sync' Answer me:\n\nThe Transcript: we ship friday",
		"Having context:\n'\nteam sync'\nAgent responses: Summary\nApply prompt:\nList action items",
		"Having context:\n'\nteam sync'\n\nThe Transcript: we ship friday\n\nApply prompt:\nRate the tone",
	}

	if len(result.Responses) != 3 {
		t.Fatalf("Responses = %d, want 3", len(result.Responses))
	}
	for i, want := range wantPrompts {
		if result.Responses[i] != "out:"+want {
			t.Errorf("Responses[%d] = %q, want %q", i, result.Responses[i], "out:"+want)
		}
		if h.recorder.entries[i].InputText != want {
			t.Errorf("entry[%d].InputText = %q", i, h.recorder.entries[i].InputText)
		}
	}

	ids := []uuid.UUID{first.ID, second.ID, third.ID}
	for i, e := range h.recorder.entries {
		if e.AgentID == nil || *e.AgentID != ids[i] {
			t.Errorf("entry[%d].AgentID = %v, want %s", i, e.AgentID, ids[i])
		}
	}

	if h.invoker.calls[1].model != models.Gemini15Flash {
		t.Errorf("second model = %q", h.invoker.calls[1].model)
	}
	if h.invoker.calls[1].temperature != agents.DefaultTemperature {
		t.Errorf("second temperature = %v, want %v", h.invoker.calls[1].temperature, agents.DefaultTemperature)
	}
	if h.invoker.calls[0].temperature != 0.5 {
		t.Errorf("first temperature = %v, want 0.5", h.invoker.calls[0].temperature)
	}

	if len(result.Steps) != 3 || result.Steps[2].AgentName != "Tone" {
		t.Errorf("Steps = %+v", result.Steps)
	}

	starts := h.tracker.nodeStarts()
	for _, n := range []string{"agent-0", "agent-1", "agent-2"} {
		if !starts[n] {
			t.Errorf("node %s was not observed", n)
		}
	}
}

func TestDiagnose_DegradedStepRecorded(t *testing.T) {
	h := newHarness(agent("a", "p"), agent("b", "p"))
	h.invoker.respond = func(_ context.Context, c call) models.Result {
		if strings.Contains(c.prompt, "Apply prompt") {
			return models.Result{Text: "partial", Model: c.model, Attempts: 3, Degraded: true, Err: errors.New("boom")}
		}
		return models.Result{Text: "ok", Model: c.model, Attempts: 1}
	}
	sys := h.system(t, diagnostics.Config{})

	result, err := sys.Diagnose(context.Background(), diagnostics.Request{OwnerIdentity: "ana", TranscriptText: "t"})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	if got := result.Responses; len(got) != 2 || got[0] != "ok" || got[1] != "partial" {
		t.Errorf("Responses = %q", got)
	}

	e := h.recorder.entries[1]
	if !e.Degraded || e.Attempts != 3 || e.OutputText != "partial" {
		t.Errorf("degraded entry = %+v", e)
	}

	if h.tracker.runs[0].status != diagnostics.StatusCompleted {
		t.Errorf("run status = %q, want completed", h.tracker.runs[0].status)
	}
}

func TestDiagnose_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  diagnostics.Request
	}{
		{"missing owner", diagnostics.Request{TranscriptText: "t"}},
		{"missing transcript", diagnostics.Request{OwnerIdentity: "ana"}},
		{"blank transcript", diagnostics.Request{OwnerIdentity: "ana", TranscriptText: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(agent("a", "p"))
			sys := h.system(t, diagnostics.Config{})

			_, err := sys.Diagnose(context.Background(), tt.req)
			if !errors.Is(err, diagnostics.ErrInvalidRequest) {
				t.Fatalf("err = %v, want ErrInvalidRequest", err)
			}
			if h.invoker.count() != 0 || len(h.recorder.entries) != 0 {
				t.Error("invalid request must not invoke or record")
			}
			if len(h.tracker.runs) != 0 {
				t.Error("invalid request must not start a run")
			}
		})
	}
}

func TestDiagnose_PersistenceErrorAborts(t *testing.T) {
	h := newHarness(agent("a", "p"), agent("b", "p"), agent("c", "p"))
	h.recorder.err = errors.New("disk full")
	h.recorder.failAt = 2
	sys := h.system(t, diagnostics.Config{})

	_, err := sys.Diagnose(context.Background(), diagnostics.Request{OwnerIdentity: "ana", TranscriptText: "t"})
	if !errors.Is(err, h.recorder.err) {
		t.Fatalf("err = %v, want %v", err, h.recorder.err)
	}
	if h.invoker.count() != 2 {
		t.Errorf("calls = %d, want 2", h.invoker.count())
	}
	if got := h.tracker.runs[0].status; got != diagnostics.StatusFailed {
		t.Errorf("run status = %q, want failed", got)
	}
}

func TestDiagnose_AgentListError(t *testing.T) {
	h := newHarness()
	h.agents.err = errors.New("connection refused")
	sys := h.system(t, diagnostics.Config{})

	_, err := sys.Diagnose(context.Background(), diagnostics.Request{OwnerIdentity: "ana", TranscriptText: "t"})
	if !errors.Is(err, h.agents.err) {
		t.Fatalf("err = %v", err)
	}
	if h.invoker.count() != 0 {
		t.Error("no model call expected")
	}
}

func TestDiagnose_ContextErrorAborts(t *testing.T) {
	h := newHarness(agent("a", "p"))
	h.docs.err = errors.New("query failed")
	sys := h.system(t, diagnostics.Config{})

	_, err := sys.Diagnose(context.Background(), diagnostics.Request{OwnerIdentity: "ana", TranscriptText: "t"})
	if !errors.Is(err, h.docs.err) {
		t.Fatalf("err = %v", err)
	}
	if h.invoker.count() != 0 {
		t.Error("no model call expected")
	}
}

func TestDiagnose_Timeout(t *testing.T) {
	h := newHarness(agent("a", "p"))
	h.invoker.respond = func(ctx context.Context, c call) models.Result {
		<-ctx.Done()
		return models.Result{Model: c.model, Degraded: true, Err: ctx.Err()}
	}
	sys := h.system(t, diagnostics.Config{Timeout: "20ms"})

	_, err := sys.Diagnose(context.Background(), diagnostics.Request{OwnerIdentity: "ana", TranscriptText: "t"})
	if !errors.Is(err, diagnostics.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if got := h.tracker.runs[0].status; got != diagnostics.StatusTimedOut {
		t.Errorf("run status = %q, want timeout", got)
	}
}

func TestDiagnose_Concurrent(t *testing.T) {
	list := []agents.Agent{agent("a", "pa"), agent("b", "pb"), agent("c", "pc"), agent("d", "pd")}
	h := newHarness(list...)

	delays := map[string]time.Duration{"pb": 30 * time.Millisecond, "pc": 10 * time.Millisecond}
	h.invoker.respond = func(_ context.Context, c call) models.Result {
		for suffix, d := range delays {
			if strings.HasSuffix(c.prompt, suffix) {
				time.Sleep(d)
			}
		}
		return models.Result{Text: c.prompt[len(c.prompt)-2:], Model: c.model, Attempts: 1}
	}
	sys := h.system(t, diagnostics.Config{Concurrent: ptr(true), MaxConcurrency: 2})

	result, err := sys.Diagnose(context.Background(), diagnostics.Request{OwnerIdentity: "ana", TranscriptText: "t", FreeContext: "f"})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	if len(result.Responses) != 4 {
		t.Fatalf("Responses = %q", result.Responses)
	}
	for i, a := range list[1:] {
		if result.Responses[i+1] != a.Prompt {
			t.Errorf("Responses[%d] = %q, want %q", i+1, result.Responses[i+1], a.Prompt)
		}
	}

	for i, e := range h.recorder.entries {
		if *e.AgentID != list[i].ID {
			t.Errorf("entry[%d] recorded out of agent order", i)
		}
	}

	if got := len(h.tracker.nodeStarts()); got != 4 {
		t.Errorf("observed nodes = %d, want 4", got)
	}
}

func TestDiagnose_TrimsOwner(t *testing.T) {
	h := newHarness(agent("a", "p"))
	sys := h.system(t, diagnostics.Config{})

	result, err := sys.Diagnose(context.Background(), diagnostics.Request{OwnerIdentity: "  ana ", TranscriptText: "t"})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	if len(result.Steps) != 1 || result.Steps[0].AgentName != "a" {
		t.Fatalf("Steps = %+v, want the agent owned by ana", result.Steps)
	}
	if got := h.recorder.entries[0].Owner; got != "ana" {
		t.Errorf("entry owner = %q, want ana", got)
	}
}

func TestDiagnose_ManyAgents(t *testing.T) {
	const n = 1200

	list := make([]agents.Agent, n)
	for i := range list {
		list[i] = agent(fmt.Sprintf("agent %d", i), "p")
	}
	h := newHarness(list...)
	sys := h.system(t, diagnostics.Config{Timeout: "1m"})

	result, err := sys.Diagnose(context.Background(), diagnostics.Request{OwnerIdentity: "ana", TranscriptText: "t"})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	if len(result.Responses) != n {
		t.Errorf("Responses = %d, want %d", len(result.Responses), n)
	}
	if h.invoker.count() != n {
		t.Errorf("calls = %d, want %d", h.invoker.count(), n)
	}
	if len(h.recorder.entries) != n {
		t.Errorf("entries = %d, want %d", len(h.recorder.entries), n)
	}
	if got := h.tracker.runs[0].status; got != diagnostics.StatusCompleted {
		t.Errorf("run status = %q, want completed", got)
	}
}

func TestConfigure_AppliesToNextRun(t *testing.T) {
	h := newHarness()
	sys := h.system(t, diagnostics.Config{})

	next := diagnostics.Config{DefaultModel: string(models.Gemini15Pro), DefaultTemperature: ptr(1.1)}
	if err := next.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	sys.Configure(next)

	if _, err := sys.Diagnose(context.Background(), diagnostics.Request{OwnerIdentity: "ana", TranscriptText: "t"}); err != nil {
		t.Fatal(err)
	}

	c := h.invoker.calls[0]
	if c.model != models.Gemini15Pro || c.temperature != 1.1 {
		t.Errorf("call = %+v, want reloaded defaults", c)
	}
	if sys.Config().DefaultModel != string(models.Gemini15Pro) {
		t.Errorf("Config().DefaultModel = %q", sys.Config().DefaultModel)
	}
}
