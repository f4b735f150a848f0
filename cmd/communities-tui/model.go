package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-communities/pkg/report"
)

type view int

const (
	summaryView view = iota
	sizesView
	linksView
	densestView
	brokersView
	sentimentView
	viewCount
)

var viewNames = []string{"Summary", "Sizes", "Links", "Densest", "Brokers", "Sentiment"}

// reportMsg delivers the finished (or failed) run.
type reportMsg struct {
	report *report.Report
	err    error
}

type model struct {
	load        tea.Cmd
	cancel      context.CancelFunc
	report      *report.Report
	err         error
	currentView view
	tables      map[view]*table.Model
	spinner     spinner.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
}

func initialModel(load tea.Cmd, cancel context.CancelFunc) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF00FF"))

	return model{
		load:    load,
		cancel:  cancel,
		spinner: s,
		help:    help.New(),
		keys:    keys,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case reportMsg:
		m.report, m.err = msg.report, msg.err
		if m.report != nil {
			m.tables = buildTables(m.report)
		}
		return m, nil

	case spinner.TickMsg:
		if m.report != nil || m.err != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.currentView = (m.currentView + viewCount - 1) % viewCount
			return m, nil
		}
	}

	if t, ok := m.tables[m.currentView]; ok {
		var cmd tea.Cmd
		*t, cmd = t.Update(msg)
		return m, cmd
	}
	return m, nil
}

func newTable(columns []table.Column, rows []table.Row) *table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)
	return &t
}

func buildTables(r *report.Report) map[view]*table.Model {
	sizes := make([]table.Row, len(r.Sizes))
	for i, s := range r.Sizes {
		sizes[i] = table.Row{strconv.Itoa(s.Community), strconv.Itoa(s.Nodes)}
	}

	links := make([]table.Row, len(r.Links))
	for i, l := range r.Links {
		links[i] = table.Row{
			fmt.Sprintf("%s (%d)", l.NameA, l.A),
			fmt.Sprintf("%s (%d)", l.NameB, l.B),
			strconv.Itoa(l.Edges),
		}
	}

	densest := make([]table.Row, len(r.Densest))
	for i, d := range r.Densest {
		densest[i] = table.Row{
			d.Name,
			strconv.Itoa(d.Community),
			fmt.Sprintf("%.3f", d.Density),
			strconv.Itoa(len(d.Labels)),
		}
	}

	brokers := make([]table.Row, len(r.Brokers))
	for i, b := range r.Brokers {
		brokers[i] = table.Row{b.Name, strconv.Itoa(b.Community), strconv.Itoa(b.Count())}
	}

	sentiment := make([]table.Row, 0, len(r.IntraSentiment)+len(r.NodeSentiment))
	for _, s := range r.IntraSentiment {
		sentiment = append(sentiment, table.Row{
			"community " + s.Name, strconv.Itoa(s.Positive), strconv.Itoa(s.Negative),
		})
	}
	for _, q := range r.NodeSentiment {
		if !q.Found {
			sentiment = append(sentiment, table.Row{"node " + q.Query + " (missing)", "-", "-"})
			continue
		}
		sentiment = append(sentiment, table.Row{
			"node " + q.Result.Label, strconv.Itoa(q.Result.Positive), strconv.Itoa(q.Result.Negative),
		})
	}

	return map[view]*table.Model{
		sizesView: newTable([]table.Column{
			{Title: "Community", Width: 12},
			{Title: "Nodes", Width: 8},
		}, sizes),
		linksView: newTable([]table.Column{
			{Title: "Community A", Width: 28},
			{Title: "Community B", Width: 28},
			{Title: "Edges", Width: 8},
		}, links),
		densestView: newTable([]table.Column{
			{Title: "Name", Width: 28},
			{Title: "Community", Width: 12},
			{Title: "Density", Width: 10},
			{Title: "Members", Width: 8},
		}, densest),
		brokersView: newTable([]table.Column{
			{Title: "Name", Width: 28},
			{Title: "Community", Width: 12},
			{Title: "Brokers", Width: 8},
		}, brokers),
		sentimentView: newTable([]table.Column{
			{Title: "Subject", Width: 36},
			{Title: "Positive", Width: 10},
			{Title: "Negative", Width: 10},
		}, sentiment),
	}
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Community Explorer"))
	s.WriteString("\n\n")

	switch {
	case m.err != nil:
		s.WriteString(contentStyle.Render(errorStyle.Render("✗ " + m.err.Error())))
	case m.report == nil:
		s.WriteString(contentStyle.Render(m.spinner.View() + " Running analysis..."))
	default:
		s.WriteString(m.renderTabs())
		s.WriteString("\n")
		s.WriteString(contentStyle.Render(m.renderView()))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m model) renderTabs() string {
	rendered := make([]string, len(viewNames))
	for i, name := range viewNames {
		if view(i) == m.currentView {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) renderView() string {
	if m.currentView == summaryView {
		return m.renderSummary()
	}

	t := m.tables[m.currentView]
	out := t.View()
	if detail := m.renderDetail(t.Cursor()); detail != "" {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, "  ", detailStyle.Render(detail))
	}
	return out
}

// renderDetail shows the member list behind the selected row.
func (m model) renderDetail(row int) string {
	switch m.currentView {
	case densestView:
		if row >= 0 && row < len(m.report.Densest) {
			return strings.Join(m.report.Densest[row].Labels, ", ")
		}
	case brokersView:
		if row >= 0 && row < len(m.report.Brokers) {
			if labels := m.report.Brokers[row].Labels; len(labels) > 0 {
				return strings.Join(labels, ", ")
			}
			return "no brokers"
		}
	}
	return ""
}

func (m model) renderSummary() string {
	r := m.report
	converged := "yes"
	if !r.Detection.Converged {
		converged = "no"
	}

	stats := fmt.Sprintf(`Graph
Records:   %d
Nodes:     %d
Edges:     %d
Pruned:    %d
Truncated: %t`, r.Graph.Records, r.Graph.Nodes, r.Graph.Edges, r.Graph.Pruned, r.Graph.Truncated)

	detection := fmt.Sprintf(`Detection
Mode:        %s
Passes:      %d
Converged:   %s
Communities: %d
Modularity:  %.4f`, r.Detection.Mode, r.Detection.Iterations, converged, r.Detection.Communities, r.Detection.Modularity)

	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("run %s  source %s", r.RunID, r.Source),
		lipgloss.JoinHorizontal(lipgloss.Top, statsBoxStyle.Render(stats), statsBoxStyle.Render(detection)),
	)
}
