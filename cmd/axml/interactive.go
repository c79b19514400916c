package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lukhio/axml/binxml"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E8B57")).
			Padding(0, 1)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	attrNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	attrValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0E68C"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E8B57"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// row is one visible line of the element tree.
type row struct {
	el    *binxml.Element
	depth int
}

type browserModel struct {
	err      error
	source   string
	doc      *binxml.Document
	rows     []row
	expanded map[*binxml.Element]bool
	cursor   int
	view     viewport.Model
	ready    bool
	load     func() ([]byte, error)
}

type loadedMsg struct {
	err error
	doc *binxml.Document
}

func newBrowserModel(source string, load func() ([]byte, error)) *browserModel {
	return &browserModel{
		source:   source,
		expanded: make(map[*binxml.Element]bool),
		load:     load,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadDocument
}

func (m *browserModel) loadDocument() tea.Msg {
	data, err := m.load()
	if err != nil {
		return loadedMsg{err: err}
	}
	doc, err := binxml.Decode(data)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{doc: doc}
}

// rebuild flattens the tree into visible rows under the current
// expand/collapse state.
func (m *browserModel) rebuild() {
	m.rows = m.rows[:0]
	if m.doc == nil || m.doc.Root == nil {
		return
	}
	var walk func(el *binxml.Element, depth int)
	walk = func(el *binxml.Element, depth int) {
		m.rows = append(m.rows, row{el: el, depth: depth})
		if !m.expanded[el] {
			return
		}
		for _, child := range el.Children {
			walk(child, depth+1)
		}
	}
	walk(m.doc.Root, 0)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}

		case "enter", " ":
			if m.cursor < len(m.rows) {
				el := m.rows[m.cursor].el
				if len(el.Children) > 0 {
					m.expanded[el] = !m.expanded[el]
					m.rebuild()
				}
			}

		case "right", "l":
			if m.cursor < len(m.rows) {
				el := m.rows[m.cursor].el
				if len(el.Children) > 0 && !m.expanded[el] {
					m.expanded[el] = true
					m.rebuild()
				}
			}

		case "left", "h":
			if m.cursor < len(m.rows) {
				el := m.rows[m.cursor].el
				if m.expanded[el] {
					m.expanded[el] = false
					m.rebuild()
				}
			}
		}

	case tea.WindowSizeMsg:
		// Title, attribute panel and help line take the rest.
		height := msg.Height - attrPanelHeight - 4
		if height < 3 {
			height = 3
		}
		if !m.ready {
			m.view = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = height
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.doc = msg.doc
		m.expanded[m.doc.Root] = true
		m.rebuild()
	}

	if m.ready {
		m.view.SetContent(m.treeContent())
		m.scrollToCursor()
	}
	return m, nil
}

// scrollToCursor keeps the selected row inside the viewport.
func (m *browserModel) scrollToCursor() {
	if m.cursor < m.view.YOffset {
		m.view.SetYOffset(m.cursor)
	} else if m.cursor >= m.view.YOffset+m.view.Height {
		m.view.SetYOffset(m.cursor - m.view.Height + 1)
	}
}

const attrPanelHeight = 6

func (m *browserModel) treeContent() string {
	var b strings.Builder
	for i, r := range m.rows {
		marker := "  "
		if len(r.el.Children) > 0 {
			marker = "+ "
			if m.expanded[r.el] {
				marker = "- "
			}
		}
		prefix := strings.Repeat("  ", r.depth) + marker
		line := prefix + tagStyle.Render(formatElement(r.el))
		if i == m.cursor {
			line = selectedStyle.Render(prefix + formatElement(r.el))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func formatElement(el *binxml.Element) string {
	name := "<" + el.Name + ">"
	if n := len(el.Attrs); n > 0 {
		name += fmt.Sprintf(" (%d attrs)", n)
	}
	return name
}

// attrPanel renders the selected element's attributes, truncated to the
// panel height.
func (m *browserModel) attrPanel() string {
	if m.cursor >= len(m.rows) {
		return ""
	}
	el := m.rows[m.cursor].el

	var b strings.Builder
	b.WriteString(tagStyle.Render("<"+el.Name+">") + "\n")
	shown := 0
	for _, attr := range el.Attrs {
		if shown == attrPanelHeight-2 {
			b.WriteString(helpStyle.Render(fmt.Sprintf("… %d more", len(el.Attrs)-shown)))
			b.WriteString("\n")
			break
		}
		b.WriteString("  ")
		b.WriteString(attrNameStyle.Render(attr.Name))
		b.WriteString("=")
		b.WriteString(attrValueStyle.Render(fmt.Sprintf("%q", attr.Value)))
		b.WriteString("\n")
		shown++
	}
	if el.Text != "" && shown < attrPanelHeight-2 {
		b.WriteString("  " + attrValueStyle.Render(fmt.Sprintf("%q", el.Text)) + "\n")
	}
	return b.String()
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.doc == nil || !m.ready {
		return "Decoding document..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("AXML Browser"))
	b.WriteString(" ")
	b.WriteString(m.source)
	b.WriteString("\n\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")
	b.WriteString(m.attrPanel())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • enter toggle • ←/→ collapse/expand • q quit"))
	return b.String()
}

func runInteractive(apkFile, xmlFile string) error {
	source := xmlFile
	load := func() ([]byte, error) { return loadDocument("", xmlFile) }
	if apkFile != "" {
		source = apkFile
		load = func() ([]byte, error) { return loadDocument(apkFile, "") }
	}

	p := tea.NewProgram(newBrowserModel(source, load), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
