// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/sentinel/internal/core"
)

// Run starts the interactive editor for an open session and blocks
// until the user quits.
func Run(session *core.Session) error {
	_, err := tea.NewProgram(
		newEditorModel(session),
		tea.WithAltScreen(),
	).Run()
	return err
}
