package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vova2plova/Progressivity/internal/engine"
)

func RunBoard(ctx context.Context, svc *engine.Service, ownerID string, out io.Writer) error {
	m := newBoardModel(ctx, svc, ownerID)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
