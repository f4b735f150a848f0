package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	name    lipgloss.Style
	muted   lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	members lipgloss.Style
	border  lipgloss.Style
}

func newStyles(re *lipgloss.Renderer) styles {
	return styles{
		title:   re.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF00FF")),
		section: re.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF")).MarginTop(1),
		name:    re.NewStyle().Bold(true),
		muted:   re.NewStyle().Foreground(lipgloss.Color("#888888")),
		good:    re.NewStyle().Foreground(lipgloss.Color("#00FF00")),
		bad:     re.NewStyle().Foreground(lipgloss.Color("#FF0000")),
		members: re.NewStyle().Width(78).PaddingLeft(2),
		border:  re.NewStyle().Foreground(lipgloss.Color("#00FFFF")),
	}
}

// WriteText renders r as a human-readable report. Colors follow the
// terminal capabilities of w unless opts.NoColor is set.
func WriteText(w io.Writer, r *Report, opts Options) error {
	re := lipgloss.NewRenderer(w)
	if opts.NoColor {
		re.SetColorProfile(termenv.Ascii)
	}
	st := newStyles(re)

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("%s", st.title.Render("Community report"))
	line("%s", st.muted.Render(fmt.Sprintf("run %s  source %s  started %s  took %.3fs",
		r.RunID, r.Source, r.StartedAt.Format("2006-01-02 15:04:05"), r.ElapsedSeconds)))

	g := r.Graph
	line("Graph created with %d nodes and %d edges (%d records read, %d isolated nodes pruned).",
		g.Nodes, g.Edges, g.Records, g.Pruned)
	if g.Truncated {
		line("%s", st.muted.Render("Edge limit reached; remaining records were not read."))
	}

	d := r.Detection
	converged := st.good.Render("converged")
	if !d.Converged {
		converged = st.bad.Render("not converged")
	}
	line("Community detection completed: %d communities after %d %s passes (%s), modularity %.4f.",
		d.Communities, d.Iterations, d.Mode, converged, d.Modularity)

	line("%s", st.section.Render("Community sizes (more than one member)"))
	if len(r.Sizes) == 0 {
		line("%s", st.muted.Render("  none"))
	} else {
		rows := make([][]string, len(r.Sizes))
		for i, s := range r.Sizes {
			rows[i] = []string{strconv.Itoa(s.Community), strconv.Itoa(s.Nodes)}
		}
		line("%s", renderTable(re, st, []string{"Community", "Nodes"}, rows))
	}

	line("%s", st.section.Render("Top inter-community links"))
	if len(r.Links) == 0 {
		line("%s", st.muted.Render("  none"))
	} else {
		rows := make([][]string, len(r.Links))
		for i, l := range r.Links {
			rows[i] = []string{
				fmt.Sprintf("%s (%d)", l.NameA, l.A),
				fmt.Sprintf("%s (%d)", l.NameB, l.B),
				strconv.Itoa(l.Edges),
			}
		}
		line("%s", renderTable(re, st, []string{"Community A", "Community B", "Edges"}, rows))
	}

	line("%s", st.section.Render("Densest communities"))
	for _, m := range r.Densest {
		line("%s community %d, density %.3f, %d members",
			st.name.Render(m.Name), m.Community, m.Density, len(m.Labels))
		line("%s", st.members.Render(strings.Join(m.Labels, ", ")))
	}

	line("%s", st.section.Render("Brokers"))
	for _, br := range r.Brokers {
		line("%s community %d: %d brokers", st.name.Render(br.Name), br.Community, br.Count())
		if br.Count() > 0 {
			line("%s", st.members.Render(strings.Join(br.Labels, ", ")))
		}
	}

	line("%s", st.section.Render("Intra-community sentiment"))
	if len(r.IntraSentiment) > 0 {
		rows := make([][]string, len(r.IntraSentiment))
		for i, s := range r.IntraSentiment {
			rows[i] = []string{
				fmt.Sprintf("%s (%d)", s.Name, s.Community),
				strconv.Itoa(s.Positive),
				strconv.Itoa(s.Negative),
			}
		}
		line("%s", renderTable(re, st, []string{"Community", "Positive", "Negative"}, rows))
	}

	line("%s", st.section.Render("Node sentiment towards other communities"))
	for _, q := range r.NodeSentiment {
		if !q.Found {
			line("  %s: %s", q.Query, st.bad.Render("not found"))
			continue
		}
		n := q.Result
		line("  %s (node %d, community %d): %s positive, %s negative",
			st.name.Render(n.Label), n.Node, n.Community,
			st.good.Render(strconv.Itoa(n.Positive)), st.bad.Render(strconv.Itoa(n.Negative)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderTable(re *lipgloss.Renderer, st styles, headers []string, rows [][]string) string {
	cell := re.NewStyle().Padding(0, 1)
	header := cell.Bold(true)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}
