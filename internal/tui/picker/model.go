// Package picker содержит экран выбора случайной песни для TUI
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-roulette/internal/session"
	"github.com/hazadus/go-roulette/internal/tui/songlist"
	"github.com/hazadus/go-roulette/internal/view"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).MarginBottom(1)
	regionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	optionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	promptStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 2).MarginTop(1)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).MarginTop(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).MarginTop(1)
	helpStyle    = lipgloss.NewStyle().MarginTop(1)
)

// templates шаблоны регионов; подстановки заполняются из снимка
var templates = map[string]string{
	view.RegionCurrentStage:     "🎚  Стадия: %CURRENT_STAGE%",
	view.RegionSelectedSong:     "🎵 Выбрана: %CURRENT_SONG%",
	view.RegionAvailSongs:       "📋 Доступно песен: %SONG_COUNT%",
	view.RegionOptSongList:      "[l] %ACTION% список песен",
	view.RegionOptStageClear:    "[c] %ACTION% отбор только текущей стадии",
	view.RegionOptVIP:           "[v] %ACTION% VIP-песни",
	view.RegionRandomSongPrompt: "🎲 Случайная песня: %SELECTED_SONG%",
}

// Options параметры экрана
type Options struct {
	// SnapshotFile файл для сохранения состояния; пустой - сохранение недоступно
	SnapshotFile string
	LabelWidth   int
}

// Model представляет экран выбора песни
type Model struct {
	store        *session.Store
	viewOpts     view.Options
	snapshot     view.Snapshot
	snapshotFile string

	keys     keyMap
	help     help.Model
	songs    *songlist.Model
	stageBar progress.Model

	status  string
	pending tea.Cmd
}

// NewModel создает экран над хранилищем состояния. Снимок пересобирается
// после каждого изменения состояния.
func NewModel(store *session.Store, opts Options) *Model {
	m := &Model{
		store:        store,
		viewOpts:     view.Options{LabelWidth: opts.LabelWidth},
		snapshotFile: opts.SnapshotFile,
		keys:         defaultKeyMap(),
		help:         help.New(),
		songs:        songlist.NewModel(),
		stageBar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
	}

	store.OnChange(func(*session.Store) {
		m.refresh()
	})
	m.refresh()
	return m
}

func (m *Model) refresh() {
	m.snapshot = view.Build(m.store, m.viewOpts)
	if cmd := m.songs.SetRows(m.snapshot.SongList); cmd != nil {
		m.pending = tea.Batch(m.pending, cmd)
	}
}

// Snapshot возвращает последний построенный снимок
func (m *Model) Snapshot() view.Snapshot {
	return m.snapshot
}

// SetStatus задает строку состояния под экраном
func (m *Model) SetStatus(status string) {
	m.status = status
}

// SetSize задает размеры экрана
func (m *Model) SetSize(width, height int) {
	m.help.Width = width
	m.songs.SetSize(width, max(height-14, 5))
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case songlist.ToggleRowMsg:
		// Ошибка попадает в уведомление снимка
		_ = m.store.ToggleBlacklist(msg.Name)
		return m, m.takePending()

	case tea.KeyMsg:
		if m.snapshot.SongList.Visible && m.songs.Filtering() {
			m.songs, cmd = m.songs.Update(msg)
			return m, cmd
		}
		if m.handleKey(msg, &cmd) {
			return m, tea.Batch(cmd, m.takePending())
		}
	}

	if m.snapshot.SongList.Visible {
		m.songs, cmd = m.songs.Update(msg)
	}
	return m, tea.Batch(cmd, m.takePending())
}

// handleKey выполняет операцию, назначенную клавише. Возвращает false,
// если клавиша не относится к экрану.
func (m *Model) handleKey(msg tea.KeyMsg, cmd *tea.Cmd) bool {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		*cmd = tea.Quit
	case key.Matches(msg, m.keys.NextStage):
		m.store.AdvanceStage()
	case key.Matches(msg, m.keys.ToggleList):
		m.store.ToggleSongList()
	case key.Matches(msg, m.keys.ToggleClear):
		m.store.ToggleClearPreviousStages()
	case key.Matches(msg, m.keys.ToggleVIP):
		m.store.ToggleVIP()
	case key.Matches(msg, m.keys.CycleSort):
		m.store.CycleSortMode()
	case key.Matches(msg, m.keys.Random):
		_ = m.store.GetRandomSongPressed()
	case key.Matches(msg, m.keys.Accept):
		_ = m.store.ConfirmRandomSong(true, true)
	case key.Matches(msg, m.keys.Reject):
		_ = m.store.ConfirmRandomSong(false, true)
	case key.Matches(msg, m.keys.AcceptNoExclude):
		_ = m.store.ConfirmRandomSong(true, false)
	case key.Matches(msg, m.keys.RejectNoExclude):
		_ = m.store.ConfirmRandomSong(false, false)
	case key.Matches(msg, m.keys.Reset):
		m.store.Reset(true)
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		return false
	}
	return true
}

func (m *Model) save() {
	if m.snapshotFile == "" {
		m.status = "❌ Не задан файл состояния"
		return
	}
	if err := session.SaveSnapshot(m.snapshotFile, m.store.State()); err != nil {
		m.status = "❌ " + err.Error()
		return
	}
	m.status = "💾 Состояние сохранено в " + m.snapshotFile
}

func (m *Model) takePending() tea.Cmd {
	cmd := m.pending
	m.pending = nil
	return cmd
}

// View отображает экран
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎰 Рулетка песен"))
	b.WriteString("\n")

	if stage := m.snapshot.Region(view.RegionCurrentStage); !stage.Hidden {
		b.WriteString(regionStyle.Render(stage.Render(templates[view.RegionCurrentStage])))
		b.WriteString("  ")
		b.WriteString(m.stageBar.ViewAs(m.stageProgress()))
		b.WriteString("\n")
	}
	for _, name := range []string{view.RegionSelectedSong, view.RegionAvailSongs} {
		b.WriteString(m.renderRegion(name, regionStyle))
	}
	b.WriteString("\n")
	for _, name := range []string{view.RegionOptSongList, view.RegionOptStageClear, view.RegionOptVIP} {
		b.WriteString(m.renderRegion(name, optionStyle))
	}

	if prompt := m.snapshot.Region(view.RegionRandomSongPrompt); !prompt.Hidden {
		text := prompt.Render(templates[view.RegionRandomSongPrompt]) +
			"\n" + optionStyle.Render("y: принять • n: отклонить • Y/N: без исключения")
		b.WriteString(promptStyle.Render(text))
		b.WriteString("\n")
	}

	if m.snapshot.SongList.Visible {
		b.WriteString("\n")
		b.WriteString(m.songs.View())
		b.WriteString("\n")
	}

	if m.snapshot.Notice != "" {
		b.WriteString(noticeStyle.Render("⚠️  " + m.snapshot.Notice))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) renderRegion(name string, style lipgloss.Style) string {
	region := m.snapshot.Region(name)
	if region.Hidden {
		return ""
	}
	return style.Render(region.Render(templates[name])) + "\n"
}

// stageProgress доля пройденных стадий
func (m *Model) stageProgress() float64 {
	count := m.store.Catalog().StageCount()
	if count == 0 {
		return 0
	}
	return float64(m.store.State().CurrentStage+1) / float64(count)
}
