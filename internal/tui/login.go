// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// authModel is the sign-in screen. ctrl+r switches between signing in and
// registering; registering asks for the password twice.
type authModel struct {
	ctx  context.Context
	ctrl Controller

	register   bool
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newAuthModel(ctx context.Context, ctrl Controller) authModel {
	loginInput := textinput.New()
	loginInput.Placeholder = "login"
	loginInput.CharLimit = 64
	loginInput.Width = 40
	loginInput.Focus()

	passwordInput := newPasswordInput("password")
	confirmInput := newPasswordInput("repeat password")

	return authModel{
		ctx:    ctx,
		ctrl:   ctrl,
		inputs: []textinput.Model{loginInput, passwordInput, confirmInput},
	}
}

func newPasswordInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 40
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	return in
}

// fields is the number of inputs in use.
func (m authModel) fields() int {
	if m.register {
		return 3
	}
	return 2
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	if done, ok := msg.(authDoneMsg); ok {
		m.submitting = false
		if done.err != nil {
			m.errMsg = humanizeError(done.err)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.switchTo):
			m.register = !m.register
			m.errMsg = ""
			m.setFocus(0)
			return m, nil
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

func (m authModel) submit() (authModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	login := strings.TrimSpace(m.inputs[0].Value())
	pass := m.inputs[1].Value()
	if login == "" || pass == "" {
		m.errMsg = "Login and password are required"
		return m, nil
	}
	if m.register && pass != m.inputs[2].Value() {
		m.errMsg = "Passwords do not match"
		return m, nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, ctrl, register := m.ctx, m.ctrl, m.register
	return m, func() tea.Msg {
		if register {
			id, err := ctrl.Register(ctx, login, pass)
			return authDoneMsg{identity: id, err: err}
		}
		id, err := ctrl.Login(ctx, login, pass)
		return authDoneMsg{identity: id, err: err}
	}
}

func (m *authModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// reset clears the password fields, keeping the login for convenience.
func (m *authModel) reset() {
	m.inputs[1].SetValue("")
	m.inputs[2].SetValue("")
	m.submitting = false
	m.errMsg = ""
	m.setFocus(0)
}

func (m authModel) View(s styles) string {
	var b strings.Builder
	b.WriteString("Login     [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password  [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")
	if m.register {
		b.WriteString("Repeat    [")
		b.WriteString(m.inputs[2].View())
		b.WriteString("]\n")
	}

	action := "Sign in"
	title := "SIGN IN"
	other := "ctrl+r: register instead"
	if m.register {
		action, title, other = "Register", "REGISTER", "ctrl+r: sign in instead"
	}

	if m.submitting {
		b.WriteString("\n[" + action + "...]\n")
	} else {
		b.WriteString("\n[" + action + "]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(s.statusErr.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage(s, title, strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: submit │ "+other)
}
