// Package viewer is a bubbletea program that lists saved hosts and, once a
// host is selected, renders its panes through internal/render — the
// terminal-side counterpart to itmuxctl's scriptable subcommands.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/regenrek/itmux/internal/render"
	"github.com/regenrek/itmux/internal/snapshot"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	phaseStyle  = lipgloss.NewStyle().Faint(true)
	paneBorder  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type hostItem struct {
	view snapshot.HostView
}

func (h hostItem) Title() string { return h.view.Profile.Name }
func (h hostItem) Description() string {
	return fmt.Sprintf("%s:%d  %s", h.view.Profile.Hostname, h.view.Profile.Port, h.view.Connection.Phase)
}
func (h hostItem) FilterValue() string { return h.view.Profile.Name }

type changedMsg struct{}
type hostsLoadedMsg struct {
	hosts []snapshot.HostView
	err   error
}
type panesLoadedMsg struct {
	panes []snapshot.PaneSnapshot
	err   error
}

// Model is the root bubbletea model: a host list on the left, and once a
// host is picked, its pane grid rendered on the right.
type Model struct {
	src        snapshot.Source
	list       list.Model
	selected   string
	panes      []snapshot.PaneSnapshot
	err        error
	width      int
	height     int
}

// New builds a viewer model reading from src.
func New(src snapshot.Source) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "itmux hosts"
	l.SetShowHelp(true)
	return Model{src: src, list: l}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadHostsCmd(m.src), waitChangesCmd(m.src))
}

func loadHostsCmd(src snapshot.Source) tea.Cmd {
	return func() tea.Msg {
		hosts, err := src.Hosts()
		return hostsLoadedMsg{hosts: hosts, err: err}
	}
}

func loadPanesCmd(src snapshot.Source, hostID string) tea.Cmd {
	return func() tea.Msg {
		panes, err := src.Panes(hostID)
		return panesLoadedMsg{panes: panes, err: err}
	}
}

func waitChangesCmd(src snapshot.Source) tea.Cmd {
	ch := src.Changes()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(m.width/3, m.height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(hostItem); ok {
				m.selected = item.view.Profile.ID
				return m, loadPanesCmd(m.src, m.selected)
			}
		}
	case hostsLoadedMsg:
		m.err = msg.err
		items := make([]list.Item, len(msg.hosts))
		for i, h := range msg.hosts {
			items[i] = hostItem{view: h}
		}
		m.list.SetItems(items)
		return m, nil
	case panesLoadedMsg:
		m.err = msg.err
		m.panes = msg.panes
		return m, nil
	case changedMsg:
		cmds := []tea.Cmd{loadHostsCmd(m.src), waitChangesCmd(m.src)}
		if m.selected != "" {
			cmds = append(cmds, loadPanesCmd(m.src, m.selected))
		}
		return m, tea.Batch(cmds...)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}
	left := m.list.View()
	right := m.renderPanes()
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderPanes() string {
	if m.selected == "" {
		return phaseStyle.Render("select a host and press enter")
	}
	if len(m.panes) == 0 {
		return phaseStyle.Render("no panes")
	}
	var b strings.Builder
	for _, p := range m.panes {
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%dx%d)", p.Title, p.Cols, p.Rows)))
		b.WriteString("\n")
		b.WriteString(paneBorder.Render(strings.Join(render.Lines(p.GridRows), "\n")))
		b.WriteString("\n")
	}
	return b.String()
}
