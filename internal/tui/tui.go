// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-roulette/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	opts app.Options
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(opts app.Options) *App {
	return &App{opts: opts}
}

// Run запускает TUI приложение и ждет его завершения
func (tuiApp *App) Run(ctx context.Context) error {
	model := app.NewMainModel(ctx, tuiApp.opts)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	return err
}
