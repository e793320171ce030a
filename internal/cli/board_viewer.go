package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/kanban/internal/cli/formatter"
	"github.com/alexanderramin/kanban/internal/domain"
)

// boardLoadedMsg carries a fresh board view, or the error loading it.
// focus, when set, is the task to put the cursor on.
type boardLoadedMsg struct {
	view  *domain.BoardView
	focus string
	err   error
}

// taskMovedMsg reports the outcome of a move started from the viewer.
type taskMovedMsg struct {
	taskID string
	err    error
}

type viewerKeyMap struct {
	Left, Right, Up, Down key.Binding
	MoveLeft, MoveRight   key.Binding
	Detail, Refresh, Quit key.Binding
}

func newViewerKeyMap() viewerKeyMap {
	return viewerKeyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "task")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "task")),
		MoveLeft:  key.NewBinding(key.WithKeys("<", "H"), key.WithHelp("<", "move left")),
		MoveRight: key.NewBinding(key.WithKeys(">", "L"), key.WithHelp(">", "move right")),
		Detail:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k viewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.MoveRight, k.Detail, k.Refresh, k.Quit}
}

func (k viewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.MoveLeft, k.MoveRight, k.Detail, k.Refresh, k.Quit},
	}
}

// boardViewer browses one board: columns left to right, tasks top to
// bottom. Moves go through the task service and reload the board.
type boardViewer struct {
	app     *App
	boardID string

	view    *domain.BoardView
	col     int
	row     int
	detail  bool
	loading bool
	err     error

	width, height int
	keys          viewerKeyMap
	help          help.Model
	quitting      bool
}

func newBoardViewer(app *App, boardID string) *boardViewer {
	return &boardViewer{
		app:     app,
		boardID: boardID,
		loading: true,
		keys:    newViewerKeyMap(),
		help:    help.New(),
	}
}

func (v *boardViewer) Init() tea.Cmd {
	return v.load()
}

func (v *boardViewer) load() tea.Cmd {
	return v.loadFocused("")
}

func (v *boardViewer) loadFocused(taskID string) tea.Cmd {
	boards, id := v.app.Boards, v.boardID
	return func() tea.Msg {
		view, err := boards.GetBoardDetail(context.Background(), id)
		return boardLoadedMsg{view: view, focus: taskID, err: err}
	}
}

func (v *boardViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		v.help.Width = msg.Width
		return v, nil

	case boardLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.view = msg.view
			v.selectTask(msg.focus)
			v.clamp()
		}
		return v, nil

	case taskMovedMsg:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.loading = true
		return v, v.loadFocused(msg.taskID)

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *boardViewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		if v.detail && msg.String() == "esc" {
			v.detail = false
			return v, nil
		}
		v.quitting = true
		return v, tea.Quit
	case key.Matches(msg, v.keys.Refresh):
		v.loading = true
		v.err = nil
		return v, v.load()
	}

	if v.view == nil || len(v.view.Columns) == 0 {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Left):
		if v.col > 0 {
			v.col--
			v.row = 0
		}
	case key.Matches(msg, v.keys.Right):
		if v.col < len(v.view.Columns)-1 {
			v.col++
			v.row = 0
		}
	case key.Matches(msg, v.keys.Up):
		if v.row > 0 {
			v.row--
		}
	case key.Matches(msg, v.keys.Down):
		if v.row < len(v.currentColumn().Tasks)-1 {
			v.row++
		}
	case key.Matches(msg, v.keys.Detail):
		if v.selectedTask() != nil {
			v.detail = !v.detail
		}
	case key.Matches(msg, v.keys.MoveLeft):
		return v, v.moveSelected(-1)
	case key.Matches(msg, v.keys.MoveRight):
		return v, v.moveSelected(1)
	}
	return v, nil
}

// moveSelected appends the selected task to the neighbouring column.
func (v *boardViewer) moveSelected(delta int) tea.Cmd {
	t := v.selectedTask()
	target := v.col + delta
	if t == nil || target < 0 || target >= len(v.view.Columns) {
		return nil
	}
	tasks, taskID, columnID := v.app.Tasks, t.ID, v.view.Columns[target].ID
	return func() tea.Msg {
		_, err := tasks.MoveTask(context.Background(), taskID, columnID, nil)
		return taskMovedMsg{taskID: taskID, err: err}
	}
}

func (v *boardViewer) currentColumn() domain.ColumnView {
	return v.view.Columns[v.col]
}

func (v *boardViewer) selectedTask() *domain.TaskView {
	if v.view == nil || v.col >= len(v.view.Columns) {
		return nil
	}
	tasks := v.view.Columns[v.col].Tasks
	if v.row < 0 || v.row >= len(tasks) {
		return nil
	}
	return &tasks[v.row]
}

func (v *boardViewer) selectTask(taskID string) {
	if v.view == nil || taskID == "" {
		return
	}
	for ci, c := range v.view.Columns {
		for ri, t := range c.Tasks {
			if t.ID == taskID {
				v.col, v.row = ci, ri
				return
			}
		}
	}
}

// clamp keeps the cursor inside the board after a reload.
func (v *boardViewer) clamp() {
	if len(v.view.Columns) == 0 {
		v.col, v.row = 0, 0
		v.detail = false
		return
	}
	if v.col >= len(v.view.Columns) {
		v.col = len(v.view.Columns) - 1
	}
	if n := len(v.view.Columns[v.col].Tasks); v.row >= n {
		v.row = max(n-1, 0)
	}
	if v.selectedTask() == nil {
		v.detail = false
	}
}

func (v *boardViewer) View() string {
	if v.quitting {
		return ""
	}
	if v.view == nil {
		if v.err != nil {
			return "\n  " + formatter.Error(v.err) + "\n"
		}
		return "\n  " + formatter.Dim("Loading board...") + "\n"
	}

	var b strings.Builder
	b.WriteString(formatter.StyleBold.Render(v.view.Name))
	if v.loading {
		b.WriteString("  " + formatter.Dim("refreshing..."))
	}
	b.WriteString("\n\n")

	if len(v.view.Columns) == 0 {
		b.WriteString(formatter.Dim("No columns yet."))
	} else {
		b.WriteString(v.renderColumns())
	}

	if v.detail {
		if t := v.selectedTask(); t != nil {
			b.WriteString("\n" + formatter.FormatTaskDetail(*t))
		}
	}
	if v.err != nil {
		b.WriteString("\n" + formatter.Error(v.err))
	}
	b.WriteString("\n" + v.help.View(v.keys))
	return b.String()
}

func (v *boardViewer) renderColumns() string {
	width := 28
	if v.width > 0 {
		width = max(min((v.width-2*(len(v.view.Columns)-1))/len(v.view.Columns), 32), 16)
	}

	cards := make([]string, 0, len(v.view.Columns)*2)
	for i, c := range v.view.Columns {
		if i > 0 {
			cards = append(cards, "  ")
		}
		selected := -1
		if i == v.col {
			selected = v.row
		}
		cards = append(cards, formatter.FormatColumn(c, width, selected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
