package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/todo-cli/internal/ports"
	"github.com/xvierd/todo-cli/internal/services"
)

// Screen implements ports.Screen using Bubbletea.
type Screen struct {
	todos       *services.TodoService
	editor      *services.Editor
	completions *services.Completions
	opts        Options
	programOpts []tea.ProgramOption
}

// Ensure Screen implements ports.Screen.
var _ ports.Screen = (*Screen)(nil)

// NewScreen creates the to-do screen over the given services.
func NewScreen(todos *services.TodoService, editor *services.Editor, completions *services.Completions, opts Options) *Screen {
	return &Screen{
		todos:       todos,
		editor:      editor,
		completions: completions,
		opts:        opts,
		programOpts: []tea.ProgramOption{tea.WithAltScreen()},
	}
}

// SetProgramOptions replaces the Bubbletea program options, e.g. to run
// without the alternate screen or with custom input and output.
func (s *Screen) SetProgramOptions(opts ...tea.ProgramOption) {
	s.programOpts = opts
}

// Run starts the screen and blocks until the user quits or ctx is done.
func (s *Screen) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, s.todos, s.editor, s.completions, s.opts)
	program := tea.NewProgram(model, s.programOpts...)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		program.Quit()
	}()

	_, err := program.Run()

	cancel()
	wg.Wait()

	if err != nil {
		return fmt.Errorf("failed to run screen: %w", err)
	}
	return nil
}
