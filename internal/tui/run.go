package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/rezzedai/bourlier-site/internal/content"
	"github.com/rezzedai/bourlier-site/internal/schedule"
)

// Run shows the preview until the user quits or ctx is cancelled.
func Run(ctx context.Context, c *content.Content, logger *log.Logger) error {
	var p *tea.Program
	// Timers fire on their own goroutines; the loop hands their callbacks to
	// the program so widget state is only touched from Update.
	loop := schedule.NewLoopWith(func(fn func()) { p.Send(runMsg(fn)) })
	m := NewModel(c, loop, logger)
	p = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())

	_, err := p.Run()
	m.Close()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
