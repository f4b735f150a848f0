package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-communities/pkg/analytics"
	"github.com/dd0wney/cluso-communities/pkg/community"
	"github.com/dd0wney/cluso-communities/pkg/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		RunID:     "run-1",
		Source:    "links.tsv",
		Detection: report.Detection{Mode: "sequential", Iterations: 3, Converged: true, Communities: 2},
		Sizes:     []community.Size{{Community: 1, Nodes: 3}},
		Densest: []analytics.Members{
			{Community: 1, Name: "cryptocurrency", Density: 2, Labels: []string{"bitcoin", "dogecoin", "cryptocurrency"}},
		},
		Brokers: []analytics.BrokerSet{{Community: 1, Name: "cryptocurrency", Nodes: []int{2}, Labels: []string{"cryptocurrency"}}},
		NodeSentiment: []report.NodeQuery{
			{Query: "99"},
		},
	}
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

func TestModel_LoadingThenReport(t *testing.T) {
	m := initialModel(nil, nil)
	assert.Contains(t, m.View(), "Running analysis")

	m = update(t, m, reportMsg{report: sampleReport()})
	view := m.View()
	assert.Contains(t, view, "run run-1")
	assert.Contains(t, view, "Communities: 2")
	assert.Len(t, m.tables, int(viewCount)-1)
}

func TestModel_Error(t *testing.T) {
	m := update(t, initialModel(nil, nil), reportMsg{err: errors.New("open input: no such file")})
	assert.Contains(t, m.View(), "no such file")
}

func TestModel_TabCycling(t *testing.T) {
	m := update(t, initialModel(nil, nil), reportMsg{report: sampleReport()})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, sizesView, m.currentView)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, sentimentView, m.currentView)
	assert.Contains(t, m.View(), "node 99 (missing)")
}

func TestModel_DensestDetail(t *testing.T) {
	m := update(t, initialModel(nil, nil), reportMsg{report: sampleReport()})
	m.currentView = densestView

	assert.Contains(t, m.View(), "bitcoin, dogecoin, cryptocurrency")
}

func TestModel_Quit(t *testing.T) {
	m := initialModel(nil, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_QuitCancelsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := initialModel(nil, cancel)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestDecodeReport(t *testing.T) {
	rep, err := decodeReport(strings.NewReader(`{"run_id":"abc","links":[{"a":1,"b":4,"edges":2}]}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", rep.RunID)
	require.Len(t, rep.Links, 1)
	assert.Equal(t, analytics.Pair{A: 1, B: 4}, rep.Links[0].Pair)

	_, err = decodeReport(strings.NewReader("{"))
	assert.Error(t, err)
}
