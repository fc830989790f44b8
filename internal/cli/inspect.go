package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rafterlab/rafterplan/pkg/schema"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing computed plans.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [plan.json]",
		Short: "Browse a computed plan interactively",
		Long: `Browse a computed plan interactively.

The inspect command opens a terminal browser over a plan.json document:
one line per panel placement (or per row strip in row mode), with the
mount coordinates of the selected entry shown below the table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0])
		},
	}
}

// runInspect loads the plan document and runs the browser.
func (c *CLI) runInspect(ctx context.Context, input string) error {
	doc, err := schema.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}

	p := tea.NewProgram(NewPlanModel(doc), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}

// =============================================================================
// PlanModel - Interactive plan browser
// =============================================================================

// PlanEntry is one navigable line in the plan browser: a panel placement
// in panel mode or a row strip in row mode.
type PlanEntry struct {
	Label  string
	Extent string
	Mounts []schema.Mount
	Error  string
}

// PlanModel is the bubbletea model for browsing a plan document.
type PlanModel struct {
	Doc     *schema.Document
	Entries []PlanEntry
	Cursor  int
	Height  int
	Offset  int
}

// NewPlanModel creates a plan browser model from a document.
func NewPlanModel(doc *schema.Document) PlanModel {
	return PlanModel{
		Doc:     doc,
		Entries: planEntries(doc),
		Height:  15,
	}
}

// planEntries flattens the document's placements or rows into browser lines.
func planEntries(doc *schema.Document) []PlanEntry {
	var entries []PlanEntry
	switch doc.Mode {
	case schema.ModeRow:
		for i, row := range doc.Rows {
			entries = append(entries, PlanEntry{
				Label:  fmt.Sprintf("R%d", i),
				Extent: fmt.Sprintf("%d panels, [%.1f, %.1f] at y %.1f", len(row.Panels), row.Left, row.Right, row.Y),
				Mounts: row.Mounts,
				Error:  row.Error,
			})
		}
	default:
		for _, pl := range doc.Placements {
			p := doc.Panels[pl.Panel]
			entries = append(entries, PlanEntry{
				Label:  fmt.Sprintf("P%d", pl.Panel),
				Extent: fmt.Sprintf("%.1f×%.1f at (%.1f, %.1f)", p.Width, p.Height, p.X, p.Y),
				Mounts: pl.Mounts,
				Error:  pl.Error,
			})
		}
	}
	return entries
}

func (m PlanModel) Init() tea.Cmd {
	return nil
}

func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g", "home":
			m.Cursor = 0
			m.Offset = 0
		case "G", "end":
			if len(m.Entries) > 0 {
				m.Cursor = len(m.Entries) - 1
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PlanModel) View() string {
	var b strings.Builder

	title := "Mounting Plan"
	if m.Doc.Site != "" {
		title += " · " + m.Doc.Site
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s mode · ↑/↓ navigate · q quit", m.Doc.Mode)))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		status := iconSuccess
		if e.Error != "" {
			status = iconError
		}

		rows = append(rows, []string{cursor, e.Label, e.Extent, fmt.Sprintf("%d", len(e.Mounts)), status})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Item", "Extent", "Mounts", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			e := m.Entries[actualIdx]

			base := lipgloss.NewStyle()
			if e.Error != "" {
				base = base.Foreground(colorRed)
			}
			if actualIdx == m.Cursor {
				return base.Bold(true)
			}
			if e.Error == "" {
				return base.Foreground(colorWhite)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Cursor < len(m.Entries) {
		b.WriteString(m.detailLine(m.Entries[m.Cursor]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · [%d/%d]", m.jointSummary(), m.Cursor+1, len(m.Entries))))

	return b.String()
}

// detailLine renders the mount coordinates of the selected entry.
// Cantilevered mounts are marked with a star.
func (m PlanModel) detailLine(e PlanEntry) string {
	if e.Error != "" {
		return "  " + StyleError.Render(e.Error)
	}
	if len(e.Mounts) == 0 {
		return "  " + listDimStyle.Render("no mounts")
	}
	parts := make([]string, len(e.Mounts))
	for i, mt := range e.Mounts {
		s := fmt.Sprintf("(%.1f, %.1f) r%d", mt.X, mt.Y, mt.Rafter)
		if mt.Cantilevered {
			s += "*"
		}
		parts[i] = s
	}
	return listDimStyle.Render("  mounts: " + strings.Join(parts, " · "))
}

// jointSummary summarizes the document's joints for the footer.
func (m PlanModel) jointSummary() string {
	if len(m.Doc.Joints) == 0 {
		return "no joints"
	}
	var h, v, corner int
	for _, j := range m.Doc.Joints {
		switch j.Kind {
		case schema.JointHorizontal:
			h++
		case schema.JointVertical:
			v++
		case schema.JointCorner:
			corner++
		}
	}
	return fmt.Sprintf("%d joints (%d horizontal, %d vertical, %d corner)", len(m.Doc.Joints), h, v, corner)
}
