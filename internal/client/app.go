// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-lend-keeper/internal/adapter"
	"github.com/MKhiriev/go-lend-keeper/internal/config"
	"github.com/MKhiriev/go-lend-keeper/internal/export"
	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/service"
	"github.com/MKhiriev/go-lend-keeper/internal/spreadsheet"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
	"github.com/MKhiriev/go-lend-keeper/internal/tui"
	"github.com/MKhiriev/go-lend-keeper/internal/workers"
	"github.com/MKhiriev/go-lend-keeper/models"
)

// App is the client controller. It owns the filter state and is the only
// thing the terminal UI talks to.
type App struct {
	services *service.ClientServices
	prefs    store.PreferencesRepository
	storages *store.ClientStorages

	sinks     map[export.Target]export.Sink
	options   tui.Options
	buildInfo models.AppBuildInfo
	locale    ledger.ViewOption
	now       func() time.Time

	mu       sync.RWMutex
	filter   ledger.FilterState
	grouping bool
	theme    string

	errs       chan error
	background *workers.Workers

	logger *logger.Logger
}

// NewApp opens the client storage, builds the server adapter and the client
// services. Close releases the storage.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	services := service.NewClientServices(serverAdapter, storages, logger)

	sinks := map[export.Target]export.Sink{
		export.TargetFile:      export.NewFileSink(cfg.ExportDir, time.Local, logger),
		export.TargetClipboard: export.NewClipboardSink(time.Local, logger),
	}

	app := newApp(services, storages.Preferences, sinks, tui.Options{
		Currency:       cfg.Currency,
		SearchDebounce: cfg.SearchDebounce,
		StatusTimeout:  cfg.StatusTimeout,
	}, buildInfo, logger)
	app.storages = storages
	app.locale = ledger.WithLocale(cfg.Locale)
	return app, nil
}

func newApp(services *service.ClientServices, prefs store.PreferencesRepository, sinks map[export.Target]export.Sink,
	options tui.Options, buildInfo models.AppBuildInfo, logger *logger.Logger) *App {
	return &App{
		services:  services,
		prefs:     prefs,
		sinks:     sinks,
		options:   options,
		buildInfo: buildInfo,
		now:       time.Now,
		filter:    ledger.FilterState{Mode: ledger.ModeAll},
		theme:     tui.ThemeDark,
		errs:      make(chan error, 8),
		logger:    logger,
	}
}

// Run starts the background sync and blocks in the terminal UI.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.Start(ctx)

	options := a.options
	options.Theme = a.loadTheme(ctx)
	return tui.New(a, options, a.logger).Run(ctx)
}

// Start mirrors the signed-in user's collection until ctx is done. Close
// waits for the background loops, so cancel ctx before calling it.
func (a *App) Start(ctx context.Context) {
	a.background = workers.NewWorkers(
		workers.WorkerFunc(func(ctx context.Context) {
			a.services.SyncService.Follow(ctx, a.services.AuthState)
		}),
		workers.WorkerFunc(a.forwardSyncErrors),
	)
	a.background.Run(ctx)
}

// forwardSyncErrors signs the user out when the server stops accepting the
// token, and passes every error on to the UI.
func (a *App) forwardSyncErrors(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-a.services.SyncService.Errors():
			a.logger.Warn().Err(err).Str("func", "App.forwardSyncErrors").Msg("live updates failed")

			if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
				if logoutErr := a.Logout(ctx); logoutErr != nil {
					a.logger.Error().Err(logoutErr).Str("func", "App.forwardSyncErrors").Msg("logout after token expiry")
				}
			}

			select {
			case a.errs <- err:
			default:
			}
		}
	}
}

func (a *App) Close() error {
	if a.background != nil {
		a.background.Wait()
	}
	a.services.SyncService.Stop()
	if a.storages == nil {
		return nil
	}
	return a.storages.Close()
}

// ── session ───────────────────────────────────────────────────────────────────

func (a *App) Identity() models.Identity {
	return a.services.AuthState.Current()
}

func (a *App) Restore(ctx context.Context) (models.Identity, error) {
	return a.services.AuthService.Restore(ctx)
}

func (a *App) Register(ctx context.Context, login, password string) (models.Identity, error) {
	return a.services.AuthService.Register(ctx, login, password)
}

func (a *App) Login(ctx context.Context, login, password string) (models.Identity, error) {
	return a.services.AuthService.Login(ctx, login, password)
}

// Logout also resets the filter so the next user starts from a clean list.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.filter = ledger.FilterState{Mode: ledger.ModeAll}
	a.mu.Unlock()

	return a.services.AuthService.Logout(ctx)
}

// ── list state ────────────────────────────────────────────────────────────────

func (a *App) Project() ledger.Projection {
	a.mu.RLock()
	state := a.filter
	opts := a.viewOptions()
	a.mu.RUnlock()

	return ledger.Project(a.services.SyncService.Store().Snapshot(), state, opts...)
}

// viewOptions is called with a.mu held.
func (a *App) viewOptions() []ledger.ViewOption {
	var opts []ledger.ViewOption
	if a.locale != nil {
		opts = append(opts, a.locale)
	}
	if a.grouping {
		opts = append(opts, ledger.WithStatusGrouping())
	}
	return opts
}

func (a *App) Filter() ledger.FilterState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.filter
}

func (a *App) SetQuery(query string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter.Query = query
}

func (a *App) CycleMode() ledger.FilterMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter.Mode = a.filter.Mode.Next()
	return a.filter.Mode
}

// ToggleGrouping switches pending-first ordering on or off.
func (a *App) ToggleGrouping() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.grouping = !a.grouping
	return a.grouping
}

func (a *App) Changes() <-chan struct{} {
	return a.services.SyncService.Store().Changes()
}

func (a *App) SyncErrors() <-chan error {
	return a.errs
}

func (a *App) Record(id string) (models.Record, bool) {
	return a.services.SyncService.Store().Get(id)
}

// ── writes ────────────────────────────────────────────────────────────────────

func (a *App) Create(ctx context.Context, in ledger.RecordInput) (models.Record, error) {
	return a.services.RecordService.Create(ctx, in)
}

func (a *App) Edit(ctx context.Context, id string, in ledger.RecordInput) (service.EditResult, error) {
	current, ok := a.Record(id)
	if !ok {
		return service.EditResult{}, service.ErrRecordNotInStore
	}
	return a.services.RecordService.Edit(ctx, current, in)
}

func (a *App) MarkPaid(ctx context.Context, id string) (models.Record, error) {
	current, ok := a.Record(id)
	if !ok {
		return models.Record{}, service.ErrRecordNotInStore
	}
	return a.services.RecordService.MarkPaid(ctx, current)
}

func (a *App) Delete(ctx context.Context, id string) error {
	return a.services.RecordService.Delete(ctx, id)
}

func (a *App) DeleteAll(ctx context.Context, progress service.ProgressFunc) (int, error) {
	return a.services.RecordService.DeleteAll(ctx, progress)
}

// Upload reads the whole spreadsheet before anything is sent.
func (a *App) Upload(ctx context.Context, path string, progress service.ProgressFunc) (service.IngestReport, error) {
	rows, err := spreadsheet.ReadFile(path)
	if err != nil {
		return service.IngestReport{}, fmt.Errorf("read %s: %w", path, err)
	}

	a.logger.Info().Str("func", "App.Upload").Str("path", path).Int("rows", len(rows)).Msg("spreadsheet read")
	return a.services.IngestService.Upload(ctx, rows, progress)
}

// Export writes the list as currently shown: filtered, searched and sorted.
func (a *App) Export(ctx context.Context, target export.Target) (string, error) {
	sink, ok := a.sinks[target]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownExportTarget, target)
	}
	return sink.Export(ctx, a.Project().Visible, a.now())
}

// ── preferences ───────────────────────────────────────────────────────────────

func (a *App) Theme() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.theme
}

func (a *App) SetTheme(ctx context.Context, theme string) error {
	if !tui.ValidTheme(theme) {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}

	a.mu.Lock()
	a.theme = theme
	a.mu.Unlock()

	if err := a.prefs.SetPreference(ctx, store.PrefTheme, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func (a *App) loadTheme(ctx context.Context) string {
	theme, ok, err := a.prefs.GetPreference(ctx, store.PrefTheme)
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "App.loadTheme").Msg("theme preference unreadable")
	}
	if !ok || !tui.ValidTheme(theme) {
		return a.Theme()
	}

	a.mu.Lock()
	a.theme = theme
	a.mu.Unlock()
	return theme
}

func (a *App) BuildInfo() models.AppBuildInfo {
	return a.buildInfo
}
