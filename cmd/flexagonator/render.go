package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/loki3/loki3.github.io/group"
)

var (
	colorAccent = lipgloss.Color("#2CD7C7")
	colorBorder = lipgloss.Color("#16858E")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorError  = lipgloss.Color("#E74C3C")
)

var styles = struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
	Box    lipgloss.Style
}{
	Title:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Header: lipgloss.NewStyle().Bold(true),
	Muted:  lipgloss.NewStyle().Foreground(colorMuted),
	Error:  lipgloss.NewStyle().Foreground(colorError),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1),
}

type applyOutput struct {
	Sequence string   `yaml:"sequence"`
	Flexagon string   `yaml:"flexagon"`
	Splits   []string `yaml:"splits,omitempty"`
	States   []string `yaml:"states,omitempty"`
}

type shortestOutput struct {
	Sequence string `yaml:"sequence"`
	Levels   int    `yaml:"levels"`
	States   int    `yaml:"states"`
}

type stateOutput struct {
	Index    int      `yaml:"index"`
	Flexagon string   `yaml:"flexagon"`
	Moves    []string `yaml:"moves,omitempty"`
}

type exploreOutput struct {
	Complete   bool          `yaml:"complete"`
	States     []stateOutput `yaml:"states"`
	Structures [][]int       `yaml:"structures"`
	Subgraphs  [][]int       `yaml:"subgraphs,omitempty"`
}

type cycleOutput struct {
	Target   int    `yaml:"target"`
	Sequence string `yaml:"sequence"`
	Length   int    `yaml:"length"`
	Error    string `yaml:"error,omitempty"`
}

type replayOutput struct {
	Flexagon string   `yaml:"flexagon"`
	History  []string `yaml:"history"`
	Splits   []string `yaml:"splits,omitempty"`
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// displaySequence shows the empty sequence as "e".
func displaySequence(s string) string {
	if s == "" {
		return "e"
	}
	return s
}

func renderApply(out applyOutput) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(out.Flexagon))
	for _, s := range out.States {
		sb.WriteString("\n  " + s)
	}
	if len(out.Splits) > 0 {
		sb.WriteString("\n" + styles.Muted.Render("split "+strings.Join(out.Splits, ", ")))
	}
	return sb.String()
}

func renderReplay(out replayOutput, canRedo bool) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(out.Flexagon))
	for i, h := range out.History {
		fmt.Fprintf(&sb, "\n%s %s", styles.Header.Render(fmt.Sprintf("%3d", i+1)), h)
	}
	if canRedo {
		sb.WriteString("\n" + styles.Muted.Render("(more to redo)"))
	}
	return sb.String()
}

func renderExplore(out exploreOutput) string {
	var sb strings.Builder
	status := "complete"
	if !out.Complete {
		status = "stopped early"
	}
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%d states, %d structures (%s)", len(out.States), len(out.Structures), status)))
	for _, st := range out.States {
		fmt.Fprintf(&sb, "\n%s %s", styles.Header.Render(fmt.Sprintf("%4d", st.Index)), st.Flexagon)
		if len(st.Moves) > 0 {
			sb.WriteString("\n     " + styles.Muted.Render(strings.Join(st.Moves, "  ")))
		}
	}
	for i, g := range out.Subgraphs {
		fmt.Fprintf(&sb, "\nsubgraph %d: %v", i, g)
	}
	return sb.String()
}

func renderCycles(out []cycleOutput) string {
	if len(out) == 0 {
		return styles.Muted.Render("no other states share the starting structure")
	}
	lines := make([]string, 0, len(out))
	for _, c := range out {
		if c.Error != "" {
			lines = append(lines, fmt.Sprintf("%4d  %s", c.Target, styles.Error.Render(c.Error)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%4d  %s  %s", c.Target, c.Sequence, styles.Muted.Render(fmt.Sprintf("x%d", c.Length))))
	}
	return strings.Join(lines, "\n")
}

// renderGroup draws the Cayley table with element names in the cells.
func renderGroup(t *group.Table) string {
	names := make([]string, len(t.Elements))
	width := 1
	for i, e := range t.Elements {
		names[i] = displaySequence(e)
		width = max(width, lipgloss.Width(names[i]))
	}
	cell := lipgloss.NewStyle().Width(width + 1)

	var rows []string
	header := []string{cell.Render("")}
	for _, n := range names {
		header = append(header, styles.Header.Inherit(cell).Render(n))
	}
	rows = append(rows, strings.Join(header, " "))
	for i, row := range t.Rows {
		line := []string{styles.Header.Inherit(cell).Render(names[i])}
		for _, k := range row {
			line = append(line, cell.Render(names[k]))
		}
		rows = append(rows, strings.Join(line, " "))
	}

	summary := fmt.Sprintf("order %d, generators %s, orders %v", t.Order(), strings.Join(t.Generators, " "), t.Orders)
	if t.Commutative {
		summary += ", commutative"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(summary),
		styles.Box.Render(strings.Join(rows, "\n")),
		styles.Muted.Render(t.Flexagon),
	)
}
