// Package songlist содержит компонент списка песен текущей стадии для TUI
package songlist

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/hazadus/go-roulette/internal/view"
)

var (
	titleStyle      = lipgloss.NewStyle().MarginLeft(2)
	itemStyle       = lipgloss.NewStyle().PaddingLeft(4)
	cursorItemStyle = lipgloss.NewStyle().PaddingLeft(2)
	toggleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	paginationStyle = list.DefaultStyles().PaginationStyle.PaddingLeft(4)

	statusStyles = map[view.RowStatus]lipgloss.Style{
		view.RowDefault:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		view.RowSelected:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		view.RowBlacklisted: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Strikethrough(true),
	}
)

// ToggleRowMsg отправляется при нажатии переключателя строки
type ToggleRowMsg struct {
	Name string
}

// rowItem реализует интерфейс list.Item для строки списка
type rowItem struct {
	row view.Row
}

func (i rowItem) FilterValue() string {
	return i.row.Name
}

// rowDelegate отображает строку: переключатель и цветная подпись
type rowDelegate struct{}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(rowItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%s %s",
		toggleStyle.Render("["+i.row.Toggle+"]"),
		statusStyles[i.row.Status].Render(i.row.Label))

	if index == m.Index() {
		fmt.Fprint(w, cursorItemStyle.Render("> "+str))
		return
	}
	fmt.Fprint(w, itemStyle.Render(str))
}

// FuzzyFilter фильтрует имена песен нечетким поиском без учета регистра
// и диакритики. Порядок строк сохраняется.
func FuzzyFilter(term string, targets []string) []list.Rank {
	ranks := fuzzy.RankFindNormalizedFold(term, targets)
	slices.SortFunc(ranks, func(a, b fuzzy.Rank) int {
		return a.OriginalIndex - b.OriginalIndex
	})

	result := make([]list.Rank, len(ranks))
	for i, r := range ranks {
		result[i] = list.Rank{Index: r.OriginalIndex}
	}
	return result
}

// Model представляет компонент списка песен
type Model struct {
	list   list.Model
	toggle key.Binding
}

// NewModel создает пустой список песен
func NewModel() *Model {
	l := list.New(nil, rowDelegate{}, 40, 12)
	l.Title = "Песни"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Filter = FuzzyFilter
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle

	return &Model{
		list: l,
		toggle: key.NewBinding(
			key.WithKeys("b", "enter"),
			key.WithHelp("b/enter", "исключить/вернуть"),
		),
	}
}

// SetRows заменяет строки списка, сохраняя позицию курсора.
// Возвращаемая команда обновляет активный фильтр.
func (m *Model) SetRows(songList view.SongList) tea.Cmd {
	items := make([]list.Item, len(songList.Rows))
	for i, row := range songList.Rows {
		items[i] = rowItem{row: row}
	}

	m.list.Title = "Песни • сортировка: " + songList.SortLabel
	index := m.list.Index()
	cmd := m.list.SetItems(items)
	if index < len(items) {
		m.list.Select(index)
	}
	return cmd
}

// Rows возвращает видимые строки с учетом фильтра
func (m *Model) Rows() []view.Row {
	visible := m.list.VisibleItems()
	rows := make([]view.Row, 0, len(visible))
	for _, item := range visible {
		if i, ok := item.(rowItem); ok {
			rows = append(rows, i.row)
		}
	}
	return rows
}

// Filtering сообщает, вводится ли сейчас строка фильтра
func (m *Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// SetSize задает размеры списка
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// ToggleBinding клавиша переключения строки для справки
func (m *Model) ToggleBinding() key.Binding {
	return m.toggle
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() && key.Matches(msg, m.toggle) {
		if item, ok := m.list.SelectedItem().(rowItem); ok {
			name := item.row.Name
			return m, func() tea.Msg {
				return ToggleRowMsg{Name: name}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает список
func (m *Model) View() string {
	return strings.TrimRight(m.list.View(), "\n")
}
