// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/sentinel/internal/catalog"
	"github.com/toeirei/sentinel/internal/core"
	"github.com/toeirei/sentinel/internal/i18n"
	"github.com/toeirei/sentinel/internal/sshdconf"
)

// A simple style for focused text inputs.
var focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

// backToListMsg signals that the form was cancelled.
type backToListMsg struct{}

// directiveSavedMsg signals that a directive was added or edited.
type directiveSavedMsg struct {
	isNew bool
	key   string
}

// directiveFormModel is the form for adding a new directive or editing
// an existing one.
type directiveFormModel struct {
	session    *core.Session
	focusIndex int
	inputs     []textinput.Model // 0: keyword, 1: value(s)
	err        error
	editing    *sshdconf.ListItem // If not nil, we are in edit mode.
}

func newDirectiveFormModel(session *core.Session, itemToEdit *sshdconf.ListItem) directiveFormModel {
	m := directiveFormModel{
		session: session,
		inputs:  make([]textinput.Model, 2),
	}

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 128
		t.Width = 40

		switch i {
		case 0:
			t.Prompt = "Keyword: "
			t.Placeholder = "PermitRootLogin"
		case 1:
			t.Prompt = "Value:   "
			t.Placeholder = "no"
		}
		m.inputs[i] = t
	}

	if itemToEdit != nil {
		m.editing = itemToEdit
		m.inputs[0].SetValue(itemToEdit.Key)
		m.inputs[1].SetValue(itemToEdit.DisplayValues)
		m.inputs[1].Focus()
		m.inputs[1].TextStyle = focusedStyle
		m.focusIndex = 1 // Start focus on the value
	} else {
		m.inputs[0].Focus()
		m.inputs[0].TextStyle = focusedStyle
	}

	return m
}

func (m directiveFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m directiveFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		// Go back to the line list.
		case "esc":
			return m, func() tea.Msg { return backToListMsg{} }

		// Set focus to next input
		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Did the user press enter while the submit button was focused?
			// If so, apply the change.
			if s == "enter" && m.focusIndex == len(m.inputs) {
				key := strings.TrimSpace(m.inputs[0].Value())
				values := strings.Fields(m.inputs[1].Value())

				if key == "" {
					m.err = sshdconf.ErrInvalidValue
					return m, nil
				}

				if m.editing != nil {
					if err := m.session.Doc.EditDirective(m.editing.Ref, key, values...); err != nil {
						m.err = err
						return m, nil
					}
					return m, func() tea.Msg { return directiveSavedMsg{isNew: false, key: key} }
				}
				if _, err := m.session.Doc.AddDirective(key, values...); err != nil {
					m.err = err
					return m, nil
				}
				return m, func() tea.Msg { return directiveSavedMsg{isNew: true, key: key} }
			}

			// Cycle focus
			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}
			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := 0; i <= len(m.inputs)-1; i++ {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].TextStyle = focusedStyle
					continue
				}
				m.inputs[i].Blur()
				m.inputs[i].TextStyle = lipgloss.NewStyle()
			}

			return m, tea.Batch(cmds...)
		}
	}

	// Handle character input and blinking
	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *directiveFormModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m directiveFormModel) View() string {
	var viewItems []string

	if m.editing != nil {
		viewItems = append(viewItems, titleStyle.Render("✏️ "+i18n.T("form.edit_title")))
	} else {
		viewItems = append(viewItems, titleStyle.Render("✨ "+i18n.T("form.add_title")))
	}

	// The title's padding adds a newline, so we add one more for a blank line.
	viewItems = append(viewItems, "")
	for i := range m.inputs {
		viewItems = append(viewItems, m.inputs[i].View())
	}

	// Show the keyword description while typing, when we recognize it.
	if key := strings.TrimSpace(m.inputs[0].Value()); key != "" {
		if desc, ok := catalog.Describe(key); ok {
			viewItems = append(viewItems, "", helpStyle.Render(desc))
		}
	}

	button := formItemStyle.Render("[ " + i18n.T("form.submit") + " ]")
	if m.focusIndex == len(m.inputs) {
		button = formSelectedItemStyle.Render("[ " + i18n.T("form.submit") + " ]")
	}
	viewItems = append(viewItems, "", button) // Blank line before button

	if m.err != nil {
		viewItems = append(viewItems, "", errorStyle.Render(i18n.T("form.error", m.err)))
	}

	viewItems = append(viewItems, "", helpStyle.Render(i18n.T("form.help")))

	return lipgloss.JoinVertical(lipgloss.Left, viewItems...)
}
