// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

const (
	fieldName = iota
	fieldPrincipal
	fieldRepaid
	fieldStatus
	formFields
)

var formLabels = [formFields]string{
	"Name      ",
	"Amount    ",
	"Paid back ",
	"Status    ",
}

// formModel adds a loan, or edits one when editID is set. New loans have no
// status field: they always start pending. On edit the status field starts
// blank so the amounts decide unless the user types one.
type formModel struct {
	ctx  context.Context
	ctrl Controller

	editID   string
	editName string

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newFormModel(ctx context.Context, ctrl Controller, rec *models.Record) formModel {
	inputs := make([]textinput.Model, formFields)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].Prompt = ""
	}
	inputs[fieldName].CharLimit = 128
	inputs[fieldPrincipal].Placeholder = "0.00"
	inputs[fieldRepaid].Placeholder = "0.00"
	inputs[fieldStatus].Placeholder = "paid / pending"
	inputs[fieldName].Focus()

	m := formModel{ctx: ctx, ctrl: ctrl, inputs: inputs}
	if rec == nil {
		return m
	}

	m.editID = rec.ID
	m.editName = rec.Name
	m.inputs[fieldName].SetValue(rec.Name)
	m.inputs[fieldPrincipal].SetValue(ledger.FormatAmount(rec.Principal))
	m.inputs[fieldRepaid].SetValue(ledger.FormatAmount(rec.AmountRepaid))
	m.inputs[fieldStatus].Placeholder = "blank: from amounts (now " + rec.Status.String() + ")"
	return m
}

func (m formModel) editing() bool { return m.editID != "" }

func (m formModel) fields() int {
	if m.editing() {
		return formFields
	}
	return fieldStatus
}

func (m formModel) input() ledger.RecordInput {
	in := ledger.RecordInput{
		Name:         m.inputs[fieldName].Value(),
		Principal:    m.inputs[fieldPrincipal].Value(),
		AmountRepaid: m.inputs[fieldRepaid].Value(),
	}
	if m.editing() {
		in.Status = m.inputs[fieldStatus].Value()
	}
	return in
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if saved, ok := msg.(recordSavedMsg); ok {
		m.submitting = false
		if saved.err != nil {
			m.errMsg = humanizeError(saved.err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			m.setFocus((m.focus + 1) % m.fields())
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.setFocus((m.focus - 1 + m.fields()) % m.fields())
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit validates locally first so a bad form never reaches the server.
func (m formModel) submit() (formModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	in := m.input()
	if _, err := in.Normalize(); err != nil {
		m.errMsg = humanizeError(err)
		return m, nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, ctrl, id := m.ctx, m.ctrl, m.editID
	if id == "" {
		return m, func() tea.Msg {
			rec, err := ctrl.Create(ctx, in)
			return recordSavedMsg{created: true, result: editResultFor(rec), err: err}
		}
	}
	return m, func() tea.Msg {
		res, err := ctrl.Edit(ctx, id, in)
		return recordSavedMsg{result: res, err: err}
	}
}

func (m *formModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m formModel) View(s styles) string {
	var b strings.Builder
	for i := 0; i < m.fields(); i++ {
		b.WriteString(formLabels[i])
		b.WriteString("[")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(s.statusErr.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	title := "NEW LOAN"
	if m.editing() {
		title = "EDIT: " + fitText(m.editName, 40)
	}
	return renderPage(s, title, strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ enter: save")
}
