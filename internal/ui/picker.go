package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mohsinsiddi/moon/internal/hellomoon"
)

// pickerHeight is the number of items shown at once.
const pickerHeight = 12

// PickerItem is one entry shown in the interactive picker.
type PickerItem struct {
	Label    string // primary text (endpoint name)
	SubLabel string // secondary text shown dimmed (group and summary)
	Value    string // value returned on selection (may differ from Label)
}

// pickerModel is the Bubble Tea model for the filterable list picker.
// Typing narrows the list to items whose label or sub-label contains the query.
type pickerModel struct {
	title    string
	items    []PickerItem
	query    string
	visible  []int // indexes into items matching query
	cursor   int   // index into visible
	offset   int   // first visible row
	selected *PickerItem
	quitting bool
}

func newPickerModel(title string, items []PickerItem) pickerModel {
	m := pickerModel{title: title, items: items}
	m.refilter()
	return m
}

func (m *pickerModel) refilter() {
	q := strings.ToLower(m.query)
	m.visible = m.visible[:0]
	for i, it := range m.items {
		if q == "" || strings.Contains(strings.ToLower(it.Label+" "+it.SubLabel), q) {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor, m.offset = 0, 0
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyUp, tea.KeyCtrlP:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown, tea.KeyCtrlN:
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		if len(m.visible) > 0 {
			item := m.items[m.visible[m.cursor]]
			m.selected = &item
			return m, tea.Quit
		}
	case tea.KeyBackspace:
		if m.query != "" {
			r := []rune(m.query)
			m.query = string(r[:len(r)-1])
			m.refilter()
		}
	case tea.KeySpace:
		m.query += " "
		m.refilter()
	case tea.KeyRunes:
		m.query += string(key.Runes)
		m.refilter()
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+pickerHeight {
		m.offset = m.cursor - pickerHeight + 1
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(StyleTitle.Render("  "+m.title) + "\n")
	sb.WriteString("  " + StyleMeta.Render("filter: ") + StyleValue.Render(m.query) + "▏\n\n")

	if len(m.visible) == 0 {
		sb.WriteString(StyleMeta.Render("    no match") + "\n")
	}
	end := min(m.offset+pickerHeight, len(m.visible))
	for row := m.offset; row < end; row++ {
		item := m.items[m.visible[row]]
		prefix := "    "
		if row == m.cursor {
			prefix = "  ▸ "
		}

		line := prefix + StyleValue.Render(item.Label)
		if item.SubLabel != "" {
			line += "  " + StyleMeta.Render(item.SubLabel)
		}

		if row == m.cursor {
			sb.WriteString(StyleSelected.Render(line) + "\n")
		} else {
			sb.WriteString(line + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(StyleMeta.Render(fmt.Sprintf("  %d/%d   [ ↑↓ ] navigate   [ type ] filter   [ Enter ] select   [ Esc ] cancel",
		len(m.visible), len(m.items))) + "\n")
	return sb.String()
}

// PickItem runs an interactive list picker and returns the selected item's Value.
// Returns ("", nil) if the user cancels. Returns an error only on TUI failure.
func PickItem(title string, items []PickerItem) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no items to pick from")
	}

	p := tea.NewProgram(newPickerModel(title, items), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}

	fm := final.(pickerModel)
	if fm.quitting || fm.selected == nil {
		return "", nil
	}
	return fm.selected.Value, nil
}

// PickEndpoint lets the user choose one of endpoints and returns its name.
func PickEndpoint(endpoints []hellomoon.Descriptor) (string, error) {
	items := make([]PickerItem, len(endpoints))
	for i, d := range endpoints {
		items[i] = PickerItem{Label: d.Name, SubLabel: d.Group + "  " + d.Summary, Value: d.Name}
	}
	return PickItem("Pick an endpoint", items)
}
