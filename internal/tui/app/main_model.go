// Package app содержит основную логику TUI приложения
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-roulette/internal/catalog"
	"github.com/hazadus/go-roulette/internal/session"
	"github.com/hazadus/go-roulette/internal/tui/picker"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	controlsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// LoadingScreen - каталог загружается
	LoadingScreen ScreenType = iota
	// PickerScreen - экран выбора песни
	PickerScreen
	// ErrorScreen - каталог не загружен
	ErrorScreen
)

// CatalogLoadedMsg отправляется после успешной загрузки каталога
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
}

// CatalogErrorMsg отправляется при ошибке загрузки каталога
type CatalogErrorMsg struct {
	Err error
}

// Options параметры приложения
type Options struct {
	Source       catalog.Source
	SnapshotFile string
	SortMode     session.SortMode
	LabelWidth   int
	// Restore восстанавливает сохраненное состояние после загрузки каталога
	Restore bool
}

// MainModel представляет главную модель TUI
type MainModel struct {
	ctx           context.Context
	opts          Options
	currentScreen ScreenType
	spinner       spinner.Model
	pickerModel   *picker.Model
	loadErr       error
	width, height int
}

// NewMainModel создает новую главную модель
func NewMainModel(ctx context.Context, opts Options) *MainModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &MainModel{
		ctx:           ctx,
		opts:          opts,
		currentScreen: LoadingScreen,
		spinner:       s,
	}
}

// Init запускает загрузку каталога
func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog())
}

// loadCatalog загружает каталог в фоне
func (m *MainModel) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		c, err := catalog.Load(m.ctx, m.opts.Source)
		if err != nil {
			return CatalogErrorMsg{Err: err}
		}
		return CatalogLoadedMsg{Catalog: c}
	}
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Глобальные горячие клавиши
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case CatalogLoadedMsg:
		m.currentScreen = PickerScreen
		m.pickerModel = m.newPicker(msg.Catalog)
		return m, m.pickerModel.Init()

	case CatalogErrorMsg:
		m.currentScreen = ErrorScreen
		m.loadErr = msg.Err
		return m, nil
	}

	switch m.currentScreen {
	case LoadingScreen:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ErrorScreen:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "q", "esc":
				return m, tea.Quit
			case "r":
				m.currentScreen = LoadingScreen
				m.loadErr = nil
				return m, tea.Batch(m.spinner.Tick, m.loadCatalog())
			}
		}

	case PickerScreen:
		if m.pickerModel != nil {
			var cmd tea.Cmd
			m.pickerModel, cmd = m.pickerModel.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// newPicker создает экран выбора и при необходимости восстанавливает состояние
func (m *MainModel) newPicker(c *catalog.Catalog) *picker.Model {
	store := session.NewStore(c, session.WithSortMode(m.opts.SortMode))
	model := picker.NewModel(store, picker.Options{
		SnapshotFile: m.opts.SnapshotFile,
		LabelWidth:   m.opts.LabelWidth,
	})
	if m.width > 0 {
		model.SetSize(m.width, m.height)
	}

	if m.opts.Restore && m.opts.SnapshotFile != "" {
		st, err := session.LoadSnapshot(m.opts.SnapshotFile)
		if err != nil {
			model.SetStatus("❌ " + err.Error())
			return model
		}
		// Ошибка восстановления показывается уведомлением
		_ = store.Restore(st)
	}
	return model
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case LoadingScreen:
		return fmt.Sprintf("\n  %s Загрузка каталога из %s...\n", m.spinner.View(), m.opts.Source)

	case ErrorScreen:
		return fmt.Sprintf(
			"%s\n%s\n%s",
			titleStyle.Render("❌ Не удалось загрузить каталог"),
			errorStyle.Render(m.loadErr.Error()),
			controlsStyle.Render("r: повторить • q/esc: выход"),
		)

	case PickerScreen:
		if m.pickerModel != nil {
			return m.pickerModel.View()
		}
		return "Ошибка: экран выбора не инициализирован"

	default:
		return "Неизвестный экран"
	}
}
