package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-lend-keeper/internal/export"
	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/service"
	"github.com/MKhiriev/go-lend-keeper/models"
)

// fakeController keeps records in memory and remembers what the screens
// asked for.
type fakeController struct {
	mu sync.Mutex

	identity models.Identity
	records  []models.Record
	filter   ledger.FilterState
	grouping bool
	theme    string

	changes  chan struct{}
	syncErrs chan error

	restoreErr error
	authErr    error
	editResult service.EditResult
	editErr    error
	report     service.IngestReport
	uploadErr  error
	exportTo   string
	exportErr  error

	logins   []string
	created  []ledger.RecordInput
	edited   []string
	paid     []string
	deleted  []string
	uploaded []string
	exported []export.Target
	queries  []string
}

func newFakeController(records ...models.Record) *fakeController {
	return &fakeController{
		records:  records,
		filter:   ledger.FilterState{Mode: ledger.ModeAll},
		theme:    ThemeDark,
		changes:  make(chan struct{}, 1),
		syncErrs: make(chan error, 1),
		exportTo: "/tmp/loans.csv",
	}
}

func (f *fakeController) Identity() models.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.identity
}

func (f *fakeController) Restore(context.Context) (models.Identity, error) {
	return f.Identity(), f.restoreErr
}

func (f *fakeController) signIn(login string) (models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.logins = append(f.logins, login)
	if f.authErr != nil {
		return models.Identity{}, f.authErr
	}
	f.identity = models.Identity{UserID: "user-1", Login: login, Token: "token"}
	return f.identity, nil
}

func (f *fakeController) Register(_ context.Context, login, _ string) (models.Identity, error) {
	return f.signIn(login)
}

func (f *fakeController) Login(_ context.Context, login, _ string) (models.Identity, error) {
	return f.signIn(login)
}

func (f *fakeController) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identity = models.Identity{}
	return nil
}

func (f *fakeController) Project() ledger.Projection {
	f.mu.Lock()
	defer f.mu.Unlock()

	var opts []ledger.ViewOption
	if f.grouping {
		opts = append(opts, ledger.WithStatusGrouping())
	}
	return ledger.Project(ledger.StoreSnapshot{Records: f.records}, f.filter, opts...)
}

func (f *fakeController) Filter() ledger.FilterState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter
}

func (f *fakeController) SetQuery(query string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.Query = query
	f.queries = append(f.queries, query)
}

func (f *fakeController) CycleMode() ledger.FilterMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.Mode = f.filter.Mode.Next()
	return f.filter.Mode
}

func (f *fakeController) ToggleGrouping() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grouping = !f.grouping
	return f.grouping
}

func (f *fakeController) Changes() <-chan struct{} { return f.changes }

func (f *fakeController) SyncErrors() <-chan error { return f.syncErrs }

func (f *fakeController) Record(id string) (models.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.Record{}, false
}

func (f *fakeController) Create(_ context.Context, in ledger.RecordInput) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	return models.Record{ID: "new", Name: in.Name, Status: models.StatusPending}, nil
}

func (f *fakeController) Edit(_ context.Context, id string, _ ledger.RecordInput) (service.EditResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edited = append(f.edited, id)
	return f.editResult, f.editErr
}

func (f *fakeController) MarkPaid(_ context.Context, id string) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paid = append(f.paid, id)
	for _, rec := range f.records {
		if rec.ID == id {
			rec.Status = models.StatusPaid
			return rec, nil
		}
	}
	return models.Record{}, service.ErrRecordNotInStore
}

func (f *fakeController) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeController) DeleteAll(_ context.Context, progress service.ProgressFunc) (int, error) {
	f.mu.Lock()
	n := len(f.records)
	f.mu.Unlock()

	for i := 1; i <= n; i++ {
		progress(i, n)
	}
	return n, nil
}

func (f *fakeController) Upload(_ context.Context, path string, progress service.ProgressFunc) (service.IngestReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, path)
	progress(f.report.Committed, f.report.Valid)
	return f.report, f.uploadErr
}

func (f *fakeController) Export(_ context.Context, target export.Target) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exported = append(f.exported, target)
	return f.exportTo, f.exportErr
}

func (f *fakeController) Theme() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.theme
}

func (f *fakeController) SetTheme(_ context.Context, theme string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.theme = theme
	return nil
}

func (f *fakeController) BuildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123")
}

// ── helpers ────────────────────────────────────────────────────────────

func loan(id, name, principal, repaid string, status models.RecordStatus) models.Record {
	return models.Record{
		ID:           id,
		Name:         name,
		Principal:    decimal.RequireFromString(principal),
		AmountRepaid: decimal.RequireFromString(repaid),
		Status:       status,
	}
}

func testOptions() Options {
	return Options{Currency: "$", SearchDebounce: time.Millisecond, StatusTimeout: time.Minute, Theme: ThemeDark}
}

func newTestModel(ctrl Controller) Model {
	return newModel(context.Background(), ctrl, testOptions(), logger.Nop())
}

// signedIn returns a model already on the list screen.
func signedIn(t *testing.T, ctrl *fakeController) Model {
	t.Helper()
	ctrl.identity = models.Identity{UserID: "user-1", Login: "ann", Token: "token"}
	m, _ := update(newTestModel(ctrl), restoredMsg{identity: ctrl.identity})
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range msgs {
		m, cmd = update(m, k)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
	keyCtrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
)

// exec runs cmd, failing the test if it blocks.
func exec(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("command did not return")
		return nil
	}
}

// execFirst runs the first command of a batch.
func execFirst(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	batch, ok := exec(t, cmd).(tea.BatchMsg)
	if !ok || len(batch) == 0 {
		t.Fatal("expected a batch")
	}
	return exec(t, batch[0])
}
