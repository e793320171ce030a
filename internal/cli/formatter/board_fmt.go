package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/kanban/internal/domain"
)

// Column card widths for the board layout.
const (
	columnWidth    = 28
	columnGap      = 2
	minColumnWidth = 16
)

// FormatBoardList renders boards as a table inside a box.
func FormatBoardList(boards []*domain.Board) string {
	headers := []string{"ID", "NAME", "DESCRIPTION", "OWNER", "CREATED"}
	rows := make([][]string, 0, len(boards))
	for _, b := range boards {
		rows = append(rows, []string{
			TruncID(b.ID),
			Bold(b.Name),
			Truncate(domain.Deref(b.Description), 40),
			TruncID(b.OwnerID),
			HumanTimestamp(b.CreatedAt),
		})
	}
	return RenderBox("Boards", RenderTable(headers, rows))
}

// FormatUserList renders users as a table inside a box.
func FormatUserList(users []*domain.User) string {
	headers := []string{"ID", "NAME", "EMAIL", "CREATED"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			TruncID(u.ID),
			Bold(u.Name),
			OrDash(u.Email),
			HumanTimestamp(u.CreatedAt),
		})
	}
	return RenderBox("Users", RenderTable(headers, rows))
}

// FormatBoardView renders the board header followed by its columns side by
// side. A positive width narrows the columns so the board fits.
func FormatBoardView(view *domain.BoardView, width int) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(view.Name))
	b.WriteString("  " + TruncID(view.ID) + "\n")
	if view.Description != nil {
		b.WriteString(StyleFg.Render(*view.Description) + "\n")
	}
	b.WriteString(Dim(fmt.Sprintf("%d column(s), %d task(s)", len(view.Columns), view.TaskCount())) + "\n\n")

	if len(view.Columns) == 0 {
		b.WriteString(Dim("No columns yet."))
		return b.String()
	}

	colWidth := fitColumnWidth(len(view.Columns), width)
	cards := make([]string, 0, len(view.Columns)*2)
	for i, c := range view.Columns {
		if i > 0 {
			cards = append(cards, strings.Repeat(" ", columnGap))
		}
		cards = append(cards, FormatColumn(c, colWidth, -1))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	return b.String()
}

// FormatColumn renders one column as a bordered card. selected is the index
// of the highlighted task, or -1 for none.
func FormatColumn(c domain.ColumnView, width, selected int) string {
	inner := width - 4
	var b strings.Builder
	b.WriteString(StyleHeader.Render(Truncate(c.Name, inner-4)))
	b.WriteString(" " + OrderBadge(c.Ordinal) + "\n")
	b.WriteString(StyleDim.Render(strings.Repeat("─", inner)) + "\n")

	if len(c.Tasks) == 0 {
		b.WriteString(Dim("(empty)"))
	}
	for i, t := range c.Tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(taskLine(t, inner, i == selected))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Width(width-2).
		Padding(0, 1).
		Render(b.String())
}

func taskLine(t domain.TaskView, width int, selected bool) string {
	marker := "  "
	title := StyleFg.Render(Truncate(t.Title, width-4))
	if selected {
		marker = StyleSelected.Render("▸ ")
		title = StyleBold.Render(Truncate(t.Title, width-4))
	}
	line := marker + title
	if t.ImageRef != nil {
		line += " " + StyleImage.Render("▣")
	}
	if t.CreatorName != nil {
		line += "\n  " + Dim(Truncate("@"+*t.CreatorName, width-2))
	}
	return line
}

// FormatTaskDetail renders every field of a task for the detail pane.
func FormatTaskDetail(t domain.TaskView) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Title) + "\n\n")
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value))
	}
	field("ID", TruncID(t.ID))
	field("ORDER", OrderBadge(t.Ordinal))
	field("CREATOR", OrDash(t.CreatorName))
	field("IMAGE", OrDash(t.ImageRef))
	field("UPDATED", HumanTimestamp(t.UpdatedAt))
	if t.Description != nil {
		b.WriteString("\n" + StyleFg.Render(*t.Description) + "\n")
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func fitColumnWidth(n, width int) int {
	if width <= 0 || n == 0 {
		return columnWidth
	}
	w := (width - columnGap*(n-1)) / n
	if w > columnWidth {
		return columnWidth
	}
	if w < minColumnWidth {
		return minColumnWidth
	}
	return w
}
