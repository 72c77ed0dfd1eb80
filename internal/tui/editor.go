// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Sentinel.
// This file contains the logic for the main editor view: a filterable
// list of configuration lines with a detail pane, plus toggling,
// deleting, and saving.
package tui // import "github.com/toeirei/sentinel/internal/tui"

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/sentinel/internal/catalog"
	"github.com/toeirei/sentinel/internal/core"
	"github.com/toeirei/sentinel/internal/i18n"
	"github.com/toeirei/sentinel/internal/sshdconf"
)

// editorViewState represents the current view within the editor workflow.
type editorViewState int

const (
	// editorListView is the default view, showing the configuration lines.
	editorListView editorViewState = iota
	// editorFormView shows the form for adding or editing a directive.
	editorFormView
)

// editorModel holds the state for the main editor view.
type editorModel struct {
	session *core.Session
	state   editorViewState
	form    directiveFormModel

	items          []sshdconf.ListItem // Master list
	displayedItems []sshdconf.ListItem // Filtered list
	cursor         int
	status         string
	err            error
	dirty          bool
	filter         string
	isFiltering    bool
	// For delete confirmation
	isConfirmingDelete bool
	itemToDelete       sshdconf.ListItem
	confirmCursor      int // 0 for No, 1 for Yes
	width, height      int
}

// newEditorModel creates the editor model for an open session.
func newEditorModel(session *core.Session) editorModel {
	m := editorModel{session: session}
	m.rebuildItems()
	return m
}

// Init initializes the model.
func (m editorModel) Init() tea.Cmd {
	return nil
}

// rebuildItems re-projects the document into list items, applying the
// current filter text. It also ensures the cursor remains within bounds.
func (m *editorModel) rebuildItems() {
	m.items = m.session.Doc.RenderList()
	if m.filter == "" {
		m.displayedItems = m.items
	} else {
		m.displayedItems = []sshdconf.ListItem{}
		lowerFilter := strings.ToLower(m.filter)
		for _, item := range m.items {
			if strings.Contains(strings.ToLower(item.Key), lowerFilter) ||
				strings.Contains(strings.ToLower(item.DisplayValues), lowerFilter) {
				m.displayedItems = append(m.displayedItems, item)
			}
		}
	}

	// Reset cursor if it's out of bounds
	if m.cursor >= len(m.displayedItems) {
		if len(m.displayedItems) > 0 {
			m.cursor = len(m.displayedItems) - 1
		} else {
			m.cursor = 0
		}
	}
}

// selected returns the item under the cursor, if any.
func (m editorModel) selected() (sshdconf.ListItem, bool) {
	if len(m.displayedItems) == 0 || m.cursor >= len(m.displayedItems) {
		return sshdconf.ListItem{}, false
	}
	return m.displayedItems[m.cursor], true
}

// rawLine looks up the verbatim text of an item for display.
func (m editorModel) rawLine(item sshdconf.ListItem) string {
	e, ok := m.session.Doc.Entry(item.Ref)
	if !ok {
		return ""
	}
	return e.Raw()
}

// Update handles messages and updates the model's state.
func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size messages first, as they affect layout.
	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = sizeMsg.Width
		m.height = sizeMsg.Height
	}

	if m.state == editorFormView {
		if saved, ok := msg.(directiveSavedMsg); ok {
			m.state = editorListView
			m.dirty = true
			if saved.isNew {
				m.status = i18n.T("editor.status_added", saved.key)
			} else {
				m.status = i18n.T("editor.status_edited", saved.key)
			}
			m.rebuildItems()
			return m, nil
		}
		if _, ok := msg.(backToListMsg); ok {
			m.state = editorListView
			m.status = ""
			return m, nil
		}
		var newFormModel tea.Model
		newFormModel, cmd = m.form.Update(msg)
		m.form = newFormModel.(directiveFormModel)
		return m, cmd
	}

	// List view logic
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Handle delete confirmation
		if m.isConfirmingDelete {
			switch msg.String() {
			case "n", "q", "esc":
				m.isConfirmingDelete = false
				m.status = i18n.T("editor.delete_cancelled")
				return m, nil
			case "right", "tab", "l":
				m.confirmCursor = 1 // Yes
				return m, nil
			case "left", "shift+tab", "h":
				m.confirmCursor = 0 // No
				return m, nil
			case "enter":
				if m.confirmCursor == 1 { // Yes is selected
					if err := m.session.Doc.RemoveEntry(m.itemToDelete.Ref); err != nil {
						m.err = err
					} else {
						m.dirty = true
						m.status = i18n.T("editor.status_deleted", m.describeItem(m.itemToDelete))
						m.rebuildItems()
					}
				}
				m.isConfirmingDelete = false
				return m, nil
			}
			return m, nil
		}

		// If we are in filtering mode, capture all input for the filter.
		if m.isFiltering {
			switch msg.Type {
			case tea.KeyEsc:
				m.isFiltering = false
				m.filter = ""
				m.rebuildItems()
			case tea.KeyEnter:
				m.isFiltering = false
			case tea.KeyBackspace:
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.rebuildItems()
				}
			case tea.KeyRunes:
				m.filter += string(msg.Runes)
				m.rebuildItems()
			}
			return m, nil
		}

		// Not in filtering mode, handle commands.
		switch msg.String() {
		case "/":
			m.isFiltering = true
			m.filter = "" // Start with a fresh filter
			m.rebuildItems()
			return m, nil
		case "q", "esc":
			if m.filter != "" && !m.isFiltering {
				m.filter = ""
				m.rebuildItems()
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.displayedItems)-1 {
				m.cursor++
			}
		case "a":
			m.state = editorFormView
			m.form = newDirectiveFormModel(m.session, nil)
			m.status = ""
			return m, m.form.Init()
		case "e", "enter":
			if item, ok := m.selected(); ok && item.Key != "" {
				m.state = editorFormView
				m.form = newDirectiveFormModel(m.session, &item)
				m.status = ""
				return m, m.form.Init()
			}
			return m, nil
		case "d", "delete":
			if item, ok := m.selected(); ok {
				m.itemToDelete = item
				m.isConfirmingDelete = true
				m.confirmCursor = 0 // Default to No
			}
			return m, nil
		case " ", "t": // Toggle active/commented
			if item, ok := m.selected(); ok {
				if err := m.session.Doc.ToggleComment(item.Ref); err != nil {
					m.status = i18n.T("editor.cannot_toggle")
				} else {
					m.dirty = true
					m.status = i18n.T("editor.status_toggled", m.describeItem(item))
					m.rebuildItems()
				}
			}
			return m, nil
		case "c": // Copy raw line to clipboard
			if item, ok := m.selected(); ok {
				if err := clipboard.WriteAll(m.rawLine(item)); err != nil {
					m.err = err
				} else {
					m.status = i18n.T("editor.status_copied")
				}
			}
			return m, nil
		case "r": // Reload from disk, discarding changes
			if err := m.session.Reload(); err != nil {
				m.err = err
			} else {
				m.dirty = false
				m.status = i18n.T("editor.status_reloaded")
				m.rebuildItems()
			}
			return m, nil
		case "s": // Save
			if err := m.session.Save(""); err != nil {
				m.err = err
			} else {
				m.dirty = false
				m.status = i18n.T("editor.status_saved", m.session.Path)
			}
			return m, nil
		}
	}
	return m, nil
}

// describeItem returns a short human-readable tag for a list item.
func (m editorModel) describeItem(item sshdconf.ListItem) string {
	if item.Key != "" {
		return item.Key
	}
	return m.rawLine(item)
}

// View renders the editor UI based on the current model state.
func (m editorModel) View() string {
	if m.isConfirmingDelete {
		return m.viewConfirmation()
	}

	switch m.state {
	case editorFormView:
		return m.form.View()
	default: // editorListView
		return m.viewLineList()
	}
}

// viewConfirmation renders the modal dialog for confirming a line deletion.
func (m editorModel) viewConfirmation() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🗑️ " + i18n.T("editor.confirm_delete_title")))

	b.WriteString(i18n.T("editor.confirm_delete_question", m.rawLine(m.itemToDelete)))
	b.WriteString("\n\n")

	var yesButton, noButton string
	if m.confirmCursor == 1 { // Yes
		yesButton = activeButtonStyle.Render(i18n.T("editor.confirm_yes"))
		noButton = buttonStyle.Render(i18n.T("editor.confirm_no"))
	} else { // No
		yesButton = buttonStyle.Render(i18n.T("editor.confirm_yes"))
		noButton = activeButtonStyle.Render(i18n.T("editor.confirm_no"))
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, noButton, "  ", yesButton)
	b.WriteString(buttons)

	b.WriteString("\n" + helpStyle.Render("\n"+i18n.T("editor.confirm_help")))

	// Center the whole dialog
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		dialogBoxStyle.Render(b.String()),
	)
}

// renderLine renders one list row for an item.
func (m editorModel) renderLine(item sshdconf.ListItem, selected bool) string {
	var line string
	switch item.Kind {
	case sshdconf.KindDirective:
		line = fmt.Sprintf("%s %s", item.Key, item.DisplayValues)
	case sshdconf.KindCommentedDirective:
		line = inactiveItemStyle.Render(fmt.Sprintf("# %s %s", item.Key, item.DisplayValues))
	case sshdconf.KindBlank:
		line = ""
	default:
		line = inactiveItemStyle.Render(m.rawLine(item))
	}
	if selected {
		return selectedItemStyle.Render("▸ ") + line
	}
	return itemStyle.Render("  ") + line
}

// viewLineList renders the main two-pane view with the line list and details.
func (m editorModel) viewLineList() string {
	var title string
	if m.dirty {
		title = mainTitleStyle.Render("🛡️ "+i18n.T("editor.title", m.session.Path)) + specialStyle.Render(" *")
	} else {
		title = mainTitleStyle.Render("🛡️ " + i18n.T("editor.title", m.session.Path))
	}
	header := lipgloss.NewStyle().Align(lipgloss.Center).Render(title)

	// List pane (left)
	var listItems []string
	for i, item := range m.displayedItems {
		listItems = append(listItems, m.renderLine(item, m.cursor == i))
	}

	if len(m.displayedItems) == 0 && m.filter == "" {
		listItems = append(listItems, helpStyle.Render(i18n.T("editor.empty")))
	} else if len(m.displayedItems) == 0 && m.filter != "" {
		listItems = append(listItems, helpStyle.Render(i18n.T("editor.empty_filtered")))
	}

	listPane := lipgloss.JoinVertical(lipgloss.Left, listItems...)

	paneStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(1, 2)

	menuWidth := 48
	detailWidth := m.width - 4 - menuWidth - 2

	leftPane := paneStyle.Width(menuWidth).Render(listPane)

	// Details/status pane (right)
	var detailsItems []string
	if m.err != nil {
		detailsItems = append(detailsItems, errorStyle.Render(fmt.Sprintf(i18n.T("editor.error"), m.err)))
	} else if m.status != "" {
		detailsItems = append(detailsItems, statusMessageStyle.Render(m.status))
	}

	// Show the keyword description for the selected line.
	if item, ok := m.selected(); ok && item.Key != "" {
		detailsItems = append(detailsItems, "", titleStyle.Render(catalog.CanonicalName(item.Key)))
		if desc, ok := catalog.Describe(item.Key); ok {
			detailsItems = append(detailsItems, helpStyle.Render(desc))
		} else {
			detailsItems = append(detailsItems, helpStyle.Render(i18n.T("editor.no_description")))
		}
		if !item.Enabled {
			detailsItems = append(detailsItems, "", inactiveItemStyle.Render(i18n.T("editor.detail_disabled")))
		}
	}

	// Only show filter status if filtering
	if m.isFiltering {
		detailsItems = append(detailsItems, "", helpStyle.Render(fmt.Sprintf(i18n.T("editor.filtering"), m.filter)))
	}

	rightPane := paneStyle.Width(detailWidth).MarginLeft(2).Render(lipgloss.JoinVertical(lipgloss.Left, detailsItems...))

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	// Help/footer line always at the bottom
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236")).Padding(0, 1).Italic(true)
	var filterStatus string
	if m.isFiltering {
		filterStatus = fmt.Sprintf(i18n.T("editor.filtering"), m.filter)
	} else if m.filter != "" {
		filterStatus = fmt.Sprintf(i18n.T("editor.filter_active"), m.filter)
	} else {
		filterStatus = i18n.T("editor.filter_hint")
	}
	helpLine := footerStyle.Render(fmt.Sprintf("%s  %s", i18n.T("editor.footer"), filterStatus))

	return lipgloss.JoinVertical(lipgloss.Left, header, "\n", mainArea, "\n", helpLine)
}
