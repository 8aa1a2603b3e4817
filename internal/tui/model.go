package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vova2plova/Progressivity/internal/engine"
	"github.com/vova2plova/Progressivity/internal/ui"
)

type boardModel struct {
	ctx     context.Context
	svc     *engine.Service
	ownerID string

	width  int
	height int

	roots []engine.TaskView

	expanded map[string]bool
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	roots []engine.TaskView
	err   error
}

type mutatedMsg struct {
	log string
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, ownerID string) boardModel {
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		ownerID:  ownerID,
		expanded: map[string]bool{},
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

// loadCmd refetches the whole tree; there is no push notification, every
// mutation is followed by a reload.
func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		rootTasks, err := m.svc.RootsOf(m.ctx, m.ownerID)
		if err != nil {
			return loadedMsg{err: err}
		}
		var roots []engine.TaskView
		for _, t := range rootTasks {
			v, err := m.svc.GetTaskView(m.ctx, t.ID)
			if err != nil {
				return loadedMsg{err: err}
			}
			roots = append(roots, *v)
		}
		return loadedMsg{roots: roots}
	}
}

func (m boardModel) completeCmd(id, title string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.UpdateTask(m.ctx, id, engine.UpdateTaskInput{
			Status: engine.Set(engine.StatusCompleted),
		})
		if err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{log: fmt.Sprintf("Completed %q.", title)}
	}
}

type row struct {
	view  engine.TaskView
	depth int
}

func (m boardModel) rows() []row {
	var out []row
	var walk func(views []engine.TaskView, depth int)
	walk = func(views []engine.TaskView, depth int) {
		for _, v := range views {
			out = append(out, row{view: v, depth: depth})
			if m.expanded[v.ID] {
				walk(v.Children, depth+1)
			}
		}
	}
	walk(m.roots, 0)
	return out
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.roots = msg.roots
			if n := len(m.rows()); m.selected >= n && n > 0 {
				m.selected = n - 1
			}
		}
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			m.lastLog = msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		return m, m.loadCmd()

	case tea.KeyMsg:
		rows := m.rows()
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(rows)-1 {
				m.selected++
			}
		case "enter", " ":
			if m.selected < len(rows) {
				id := rows[m.selected].view.ID
				m.expanded[id] = !m.expanded[id]
			}
		case "d":
			if m.selected < len(rows) {
				v := rows[m.selected].view
				return m, m.completeCmd(v.ID, v.Title)
			}
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
		return m, nil
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.loading {
		return "Loading..."
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconChart, "Progressivity") + "\n\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(ui.Muted.Render("No tasks yet. Add one with: pv add \"My goal\"") + "\n")
	}
	for i, r := range rows {
		marker := "  "
		if r.view.TotalChildren > 0 {
			if m.expanded[r.view.ID] {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		line := fmt.Sprintf("%s%s%s %s  %s  %s",
			strings.Repeat("  ", r.depth),
			marker,
			ui.KindIcon(r.view.Kind),
			r.view.Title,
			ui.ProgressBar(r.view.Progress, 16),
			ui.StatusText(r.view.Status),
		)
		if r.view.TotalChildren > 0 {
			line += ui.Muted.Render(fmt.Sprintf("  (%d/%d)", r.view.CompletedChildren, r.view.TotalChildren))
		}
		if i == m.selected {
			line = ui.SelectedRow.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render(m.lastLog) + "\n")
	b.WriteString(ui.Muted.Render("↑/↓ move · enter expand · d complete · r refresh · q quit") + "\n")
	return b.String()
}
