package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jabrailkhalil/photoshutterinspector/internal/apperr"
)

// FileEntry is one selectable image file shown in the selector.
type FileEntry struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// fileItem represents a file in the list
type fileItem struct {
	entry    FileEntry
	selected bool
}

func (i fileItem) Title() string {
	var checkbox string
	if i.selected {
		checkbox = Success.Render("[✓] ")
	} else {
		checkbox = Dim.Render("[ ] ")
	}
	return checkbox + i.entry.Name
}

func (i fileItem) Description() string {
	return fmt.Sprintf("%s · %s",
		Dim.Render(formatSize(i.entry.Size)),
		Dim.Render(i.entry.ModTime.Format("2006-01-02 15:04:05")),
	)
}

func (i fileItem) FilterValue() string { return i.entry.Name }

// fileSelectorModel is the Bubble Tea model for the interactive selector.
// The user picks exactly two files to compare.
type fileSelectorModel struct {
	textInput textinput.Model
	list      list.Model

	entries       []FileEntry
	filteredItems []list.Item
	selected      map[string]bool
	order         []string
	filterQuery   string
	quitting      bool
	confirmed     bool
	width         int
	height        int
}

// NewFileSelector creates a new interactive file selector over the given
// directory entries.
func NewFileSelector(entries []FileEntry) *fileSelectorModel {
	ti := textinput.New()
	ti.Placeholder = "Filter files..."
	ti.Focus()
	ti.CharLimit = 156
	ti.SetWidth(50)

	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(3)
	delegate.SetSpacing(0)

	// Customize delegate styles
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorHighlight).
		BorderForeground(ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorTextDim).
		BorderForeground(ColorPrimary)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Select Two Files To Compare"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false) // We handle our own filtering
	l.SetShowHelp(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 0, 1, 0)

	m := &fileSelectorModel{
		textInput: ti,
		list:      l,
		entries:   entries,
		selected:  make(map[string]bool),
		width:     80,
		height:    24,
	}
	m.applyFilter("")
	return m
}

// Init initializes the model
func (m *fileSelectorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *fileSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.textInput.Focused() {
			switch msg.String() {
			case "ctrl+c", "esc":
				m.quitting = true
				return m, tea.Quit
			case "enter":
				// Unfocus text input and focus list
				m.textInput.Blur()
				return m, nil
			case "down", "up":
				if len(m.filteredItems) > 0 {
					m.textInput.Blur()
					var cmd tea.Cmd
					m.list, cmd = m.list.Update(msg)
					return m, cmd
				}
			default:
				var cmd tea.Cmd
				m.textInput, cmd = m.textInput.Update(msg)

				query := m.textInput.Value()
				if query != m.filterQuery {
					m.filterQuery = query
					m.applyFilter(query)
				}
				cmds = append(cmds, cmd)
				return m, tea.Batch(cmds...)
			}
		} else {
			// List is focused
			switch msg.String() {
			case "ctrl+c", "esc":
				m.quitting = true
				return m, tea.Quit
			case "enter":
				if len(m.order) == 2 {
					m.confirmed = true
					m.quitting = true
					return m, tea.Quit
				}
				return m, nil
			case "s", " ":
				// Toggle selection, capped at two files
				if i, ok := m.list.SelectedItem().(fileItem); ok {
					m.toggle(i.entry.Path)
				}
				return m, nil
			case "/", "i":
				m.textInput.Focus()
				return m, textinput.Blink
			default:
				var cmd tea.Cmd
				m.list, cmd = m.list.Update(msg)
				return m, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-10)
		return m, nil
	}

	// Update list
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the model
func (m *fileSelectorModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(1, 0)
	b.WriteString(titleStyle.Render("📷 Compare File Selector"))
	b.WriteString("\n\n")

	// Filter input
	b.WriteString(Dim.Render("Filter: "))
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	// List of files
	b.WriteString(m.list.View())
	b.WriteString("\n\n")

	if len(m.order) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n",
			Success.Render("Selected:"),
			Highlight.Render(fmt.Sprintf("%d of 2 file(s)", len(m.order)))))
	}

	helpStyle := lipgloss.NewStyle().Foreground(ColorTextDim)
	if m.textInput.Focused() {
		b.WriteString(helpStyle.Render("↑/↓: move to list · enter: finish filter · esc: cancel"))
	} else {
		b.WriteString(helpStyle.Render("s: select · ↑/↓: navigate · enter: confirm (needs 2) · /: filter · esc: cancel"))
	}

	return tea.NewView(b.String())
}

// toggle flips the selection of one path; selection order is kept so the
// first pick becomes the comparison baseline.
func (m *fileSelectorModel) toggle(path string) {
	if m.selected[path] {
		m.selected[path] = false
		for idx, p := range m.order {
			if p == path {
				m.order = append(m.order[:idx], m.order[idx+1:]...)
				break
			}
		}
	} else {
		if len(m.order) >= 2 {
			return
		}
		m.selected[path] = true
		m.order = append(m.order, path)
	}
	m.applyFilter(m.filterQuery)
}

// applyFilter rebuilds the visible items for the given substring query.
func (m *fileSelectorModel) applyFilter(query string) {
	needle := strings.ToLower(strings.TrimSpace(query))
	items := make([]list.Item, 0, len(m.entries))
	for _, e := range m.entries {
		if needle != "" && !strings.Contains(strings.ToLower(e.Name), needle) {
			continue
		}
		items = append(items, fileItem{entry: e, selected: m.selected[e.Path]})
	}
	m.filteredItems = items
	m.list.SetItems(items)
}

// SelectedFiles returns the chosen paths in selection order.
func (m *fileSelectorModel) SelectedFiles() []string {
	return append([]string(nil), m.order...)
}

// WasConfirmed returns true if the user confirmed the selection
func (m *fileSelectorModel) WasConfirmed() bool {
	return m.confirmed
}

// RunFileSelector runs the interactive selector and returns the two
// chosen file paths in selection order.
func RunFileSelector(entries []FileEntry) ([]string, error) {
	p := tea.NewProgram(NewFileSelector(entries))
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	model := m.(*fileSelectorModel)
	if !model.WasConfirmed() {
		return nil, apperr.ErrCancelled
	}

	return model.SelectedFiles(), nil
}

// formatSize renders a byte count the way file listings usually do.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
