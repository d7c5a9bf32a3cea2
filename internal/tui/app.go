// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-lend-keeper/internal/export"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/service"
	"github.com/MKhiriev/go-lend-keeper/models"
)

type screen int

const (
	screenLoading screen = iota
	screenAuth
	screenList
	screenForm
	screenUpload
	screenBulk
)

// Model is the root of the terminal UI. It routes messages to the active
// screen, owns the status line and keeps listening for store changes and
// sync errors for as long as the program runs.
type Model struct {
	ctx    context.Context
	ctrl   Controller
	opts   Options
	styles styles
	theme  string

	screen  screen
	auth    authModel
	list    listModel
	form    formModel
	upload  uploadModel
	bulk    *bulkState
	confirm *confirmModel
	overlay *overlayModel
	spinner spinner.Model

	showBuildInfo bool
	quitByUser    bool

	status    string
	statusErr bool
	statusSeq int

	height int

	logger *logger.Logger
}

func newModel(ctx context.Context, ctrl Controller, opts Options, logger *logger.Logger) Model {
	theme := opts.Theme
	if !ValidTheme(theme) {
		theme = ThemeDark
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		opts:    opts,
		styles:  newStyles(theme),
		theme:   theme,
		screen:  screenLoading,
		auth:    newAuthModel(ctx, ctrl),
		list:    newListModel(),
		spinner: sp,
		logger:  logger,
	}
}

func (m Model) Init() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	restore := func() tea.Msg {
		id, err := ctrl.Restore(ctx)
		return restoredMsg{identity: id, err: err}
	}
	return tea.Batch(restore, m.spinner.Tick, waitChange(ctrl.Changes()), waitSyncError(ctrl.SyncErrors()))
}

func waitChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func waitSyncError(ch <-chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return syncErrMsg{err: err}
	}
}

func waitProgress(ch <-chan bulkProgressMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// progressFunc forwards progress to ch, dropping a stale unread value so the
// worker never blocks on the UI.
func progressFunc(ch chan bulkProgressMsg) service.ProgressFunc {
	return func(processed, total int) {
		msg := bulkProgressMsg{processed: processed, total: total}
		select {
		case ch <- msg:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- msg:
			default:
			}
		}
	}
}

func editResultFor(rec models.Record) service.EditResult {
	return service.EditResult{Record: rec, Requested: rec.Status, Resolved: rec.Status}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitByUser = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case storeChangedMsg:
		m.list.refresh(m.ctrl)
		return m, waitChange(m.ctrl.Changes())

	case syncErrMsg:
		cmd := m.setStatus(humanizeError(msg.err), true)
		if errors.Is(msg.err, service.ErrTokenIsExpiredOrInvalid) {
			m.toAuth()
		}
		return m, tea.Batch(cmd, waitSyncError(m.ctrl.SyncErrors()))

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status, m.statusErr = "", false
		}
		return m, nil

	case searchTickMsg:
		if msg.seq == m.list.searchSeq {
			m.ctrl.SetQuery(m.list.search.Value())
			m.list.refresh(m.ctrl)
		}
		return m, nil

	case restoredMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("func", "Model.Update").Msg("session restore failed")
		}
		if msg.identity.IsZero() {
			m.screen = screenAuth
			return m, nil
		}
		return m.toList(), nil

	case authDoneMsg:
		if msg.err == nil {
			return m.toList(), m.setStatus("Signed in as "+msg.identity.Login, false)
		}

	case loggedOutMsg:
		if msg.err != nil {
			return m, m.setStatus(humanizeError(msg.err), true)
		}
		m.toAuth()
		return m, nil

	case bulkProgressMsg:
		if m.bulk == nil {
			return m, nil
		}
		m.bulk.processed, m.bulk.total = msg.processed, msg.total
		return m, waitProgress(m.bulk.ch)

	case uploadDoneMsg:
		m.bulk = nil
		m.screen = screenList
		m.upload = newUploadModel()
		overlay := uploadReportOverlay(msg.report, msg.err)
		m.overlay = &overlay
		return m, nil

	case deleteAllDoneMsg:
		m.bulk = nil
		m.screen = screenList
		if msg.err != nil {
			m.overlay = &overlayModel{title: "Delete all stopped", message: humanizeError(msg.err)}
			return m, nil
		}
		return m, m.setStatus(fmt.Sprintf("Deleted %d loan(s)", msg.deleted), false)

	case recordSavedMsg:
		if msg.err == nil {
			m.screen = screenList
			return m, m.setStatus(savedText(msg), false)
		}

	case markedPaidMsg:
		if msg.err != nil {
			return m, m.setStatus(humanizeError(msg.err), true)
		}
		return m, m.setStatus(msg.record.Name+" marked paid", false)

	case recordDeletedMsg:
		if msg.err != nil {
			return m, m.setStatus(humanizeError(msg.err), true)
		}
		return m, m.setStatus("Deleted "+msg.name, false)

	case exportDoneMsg:
		if msg.err != nil {
			return m, m.setStatus(humanizeError(msg.err), true)
		}
		return m, m.setStatus("Exported to "+msg.where, false)

	case themeSavedMsg:
		if msg.err != nil {
			return m, m.setStatus(humanizeError(msg.err), true)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.showBuildInfo {
			if key.Matches(keyMsg, keys.esc) || key.Matches(keyMsg, keys.buildInfo) {
				m.showBuildInfo = false
			}
			return m, nil
		}
		if m.overlay != nil {
			if key.Matches(keyMsg, keys.esc) || key.Matches(keyMsg, keys.enter) {
				m.overlay = nil
			}
			return m, nil
		}
		if m.confirm != nil {
			return m.updateConfirm(keyMsg)
		}
	}

	switch m.screen {
	case screenAuth:
		var cmd tea.Cmd
		m.auth, cmd = m.auth.Update(msg)
		return m, cmd
	case screenList:
		return m.updateList(msg)
	case screenForm:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.esc) {
			m.screen = screenList
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case screenUpload:
		return m.updateUpload(msg)
	}
	return m, nil
}

func savedText(msg recordSavedMsg) string {
	res := msg.result
	switch {
	case msg.created:
		return "Added " + res.Record.Name
	case res.Overridden:
		return fmt.Sprintf("Saved %s as %s: the amount is not fully paid back", res.Record.Name, res.Resolved)
	}
	return "Saved " + res.Record.Name
}

func (m Model) toList() Model {
	m.screen = screenList
	m.list.refresh(m.ctrl)
	return m
}

func (m *Model) toAuth() {
	m.screen = screenAuth
	m.confirm, m.overlay, m.bulk = nil, nil, nil
	m.list = newListModel()
	m.auth.reset()
}

// setStatus shows text on the status line until the next status or the
// configured timeout.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status, m.statusErr = text, isErr

	seq := m.statusSeq
	return tea.Tick(m.opts.StatusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)

	if m.list.searching {
		if ok && (key.Matches(keyMsg, keys.esc) || key.Matches(keyMsg, keys.enter)) {
			m.list.searching = false
			m.list.search.Blur()
			m.ctrl.SetQuery(m.list.search.Value())
			m.list.refresh(m.ctrl)
			return m, nil
		}

		before := m.list.search.Value()
		var cmd tea.Cmd
		m.list.search, cmd = m.list.search.Update(msg)
		if m.list.search.Value() == before {
			return m, cmd
		}

		m.list.searchSeq++
		seq := m.list.searchSeq
		tick := tea.Tick(m.opts.SearchDebounce, func(time.Time) tea.Msg { return searchTickMsg{seq: seq} })
		return m, tea.Batch(cmd, tick)
	}

	if !ok {
		return m, nil
	}

	ctx, ctrl := m.ctx, m.ctrl
	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		m.list.move(-1)
	case key.Matches(keyMsg, keys.down):
		m.list.move(1)
	case key.Matches(keyMsg, keys.pageUp):
		m.list.move(-10)
	case key.Matches(keyMsg, keys.pageDown):
		m.list.move(10)
	case key.Matches(keyMsg, keys.search):
		m.list.searching = true
		m.list.search.SetValue(m.ctrl.Filter().Query)
		m.list.search.CursorEnd()
		return m, m.list.search.Focus()
	case key.Matches(keyMsg, keys.esc):
		if m.ctrl.Filter().Query != "" {
			m.list.search.SetValue("")
			m.ctrl.SetQuery("")
			m.list.refresh(m.ctrl)
		}
	case key.Matches(keyMsg, keys.filter):
		m.ctrl.CycleMode()
		m.list.refresh(m.ctrl)
	case key.Matches(keyMsg, keys.grouping):
		m.list.grouping = m.ctrl.ToggleGrouping()
		m.list.refresh(m.ctrl)
	case key.Matches(keyMsg, keys.add):
		m.form = newFormModel(ctx, ctrl, nil)
		m.screen = screenForm
		return m, m.form.inputs[fieldName].Focus()
	case key.Matches(keyMsg, keys.edit):
		if rec, ok := m.list.selected(); ok {
			m.form = newFormModel(ctx, ctrl, &rec)
			m.screen = screenForm
			return m, m.form.inputs[fieldName].Focus()
		}
	case key.Matches(keyMsg, keys.markPaid):
		if rec, ok := m.list.selected(); ok {
			if rec.Status == models.StatusPaid {
				return m, m.setStatus(rec.Name+" is already paid", false)
			}
			return m, func() tea.Msg {
				updated, err := ctrl.MarkPaid(ctx, rec.ID)
				return markedPaidMsg{record: updated, err: err}
			}
		}
	case key.Matches(keyMsg, keys.delete):
		if rec, ok := m.list.selected(); ok {
			m.confirm = &confirmModel{kind: confirmDelete, id: rec.ID, message: fmt.Sprintf("Delete %q?", rec.Name)}
		}
	case key.Matches(keyMsg, keys.deleteAll):
		if total := m.list.proj.Stats.TotalCount; total > 0 {
			m.confirm = &confirmModel{kind: confirmDeleteAll, message: fmt.Sprintf("Delete ALL %d loans? This cannot be undone.", total)}
		}
	case key.Matches(keyMsg, keys.upload):
		m.upload = newUploadModel()
		m.screen = screenUpload
		return m, m.upload.path.Focus()
	case key.Matches(keyMsg, keys.exportCSV):
		return m, exportCmd(ctx, ctrl, export.TargetFile)
	case key.Matches(keyMsg, keys.copyCSV):
		return m, exportCmd(ctx, ctrl, export.TargetClipboard)
	case key.Matches(keyMsg, keys.theme):
		m.theme = nextTheme(m.theme)
		m.styles = newStyles(m.theme)
		theme := m.theme
		return m, func() tea.Msg {
			return themeSavedMsg{theme: theme, err: ctrl.SetTheme(ctx, theme)}
		}
	case key.Matches(keyMsg, keys.buildInfo):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.logout):
		m.confirm = &confirmModel{kind: confirmLogout, message: "Sign out?"}
	}
	return m, nil
}

func exportCmd(ctx context.Context, ctrl Controller, target export.Target) tea.Cmd {
	return func() tea.Msg {
		where, err := ctrl.Export(ctx, target)
		return exportDoneMsg{where: where, err: err}
	}
}

func (m Model) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(keyMsg, keys.no) {
		m.confirm = nil
		return m, nil
	}
	if !key.Matches(keyMsg, keys.yes) {
		return m, nil
	}

	c := *m.confirm
	m.confirm = nil

	ctx, ctrl := m.ctx, m.ctrl
	switch c.kind {
	case confirmDelete:
		name := c.id
		if rec, ok := ctrl.Record(c.id); ok {
			name = rec.Name
		}
		return m, func() tea.Msg {
			return recordDeletedMsg{name: name, err: ctrl.Delete(ctx, c.id)}
		}

	case confirmDeleteAll:
		ch := make(chan bulkProgressMsg, 1)
		m.bulk = &bulkState{label: "Deleting all loans", ch: ch}
		m.screen = screenBulk
		run := func() tea.Msg {
			defer close(ch)
			n, err := ctrl.DeleteAll(ctx, progressFunc(ch))
			return deleteAllDoneMsg{deleted: n, err: err}
		}
		return m, tea.Batch(run, waitProgress(ch), m.spinner.Tick)

	case confirmLogout:
		return m, func() tea.Msg {
			return loggedOutMsg{err: ctrl.Logout(ctx)}
		}
	}
	return m, nil
}

func (m Model) updateUpload(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.screen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			path := m.upload.value()
			if path == "" {
				m.upload.errMsg = "Enter a file path"
				return m, nil
			}

			ch := make(chan bulkProgressMsg, 1)
			m.bulk = &bulkState{label: "Uploading " + path, ch: ch}
			m.screen = screenBulk

			ctx, ctrl := m.ctx, m.ctrl
			run := func() tea.Msg {
				defer close(ch)
				report, err := ctrl.Upload(ctx, path, progressFunc(ch))
				return uploadDoneMsg{report: report, err: err}
			}
			return m, tea.Batch(run, waitProgress(ch), m.spinner.Tick)
		}
	}

	var cmd tea.Cmd
	m.upload.path, cmd = m.upload.path.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.styles, m.ctrl.BuildInfo())
	}

	var view string
	switch m.screen {
	case screenLoading:
		view = renderPage(m.styles, "LENDKEEPER", m.spinner.View()+" Restoring session...", "")
	case screenAuth:
		view = m.auth.View(m.styles)
	case screenForm:
		view = m.form.View(m.styles)
	case screenUpload:
		view = m.upload.View(m.styles)
	case screenBulk:
		if m.bulk != nil {
			view = renderProgress(m.styles, m.spinner, m.bulk)
		}
	default:
		view = m.listView()
	}

	switch {
	case m.overlay != nil:
		view += "\n" + m.overlay.View(m.styles)
	case m.confirm != nil:
		view += "\n" + m.confirm.View(m.styles)
	}

	if m.status != "" {
		style := m.styles.status
		if m.statusErr {
			style = m.styles.statusErr
		}
		view += "\n" + m.styles.app.Render(style.Render(m.status))
	}
	return view
}

func (m Model) listView() string {
	title := "LOANS"
	if id := m.ctrl.Identity(); id.Login != "" {
		title += " · " + id.Login
	}

	hotKeys := "a add │ e edit │ p mark paid │ d delete │ D delete all │ u upload │ / search │ f filter │ g group\n" +
		"x export csv │ c copy csv │ t theme │ v about │ l sign out │ q quit"
	if m.list.searching {
		hotKeys = "type to search │ enter/esc: done"
	}
	return renderPage(m.styles, title, m.list.View(m.styles, m.opts.Currency, m.height), hotKeys)
}
