// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-lend-keeper/internal/logger"
)

// Options are the display settings of the terminal UI.
type Options struct {
	Currency       string
	SearchDebounce time.Duration
	StatusTimeout  time.Duration
	Theme          string
}

type TUI struct {
	ctrl Controller
	opts Options

	logger *logger.Logger
}

func New(ctrl Controller, opts Options, logger *logger.Logger) *TUI {
	return &TUI{ctrl: ctrl, opts: opts, logger: logger}
}

// Run blocks until the user quits. It returns ErrUserQuit for ctrl+c and nil
// for q or a cancelled ctx.
func (t *TUI) Run(ctx context.Context) error {
	model := newModel(ctx, t.ctrl, t.opts, t.logger)

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if result, ok := final.(Model); ok && result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
