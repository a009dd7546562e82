// Package tui provides an interactive terminal browser over the
// analysis tables (BMI summary statistics, exclusion counts, extreme
// records), replacing the notebook widgets of the original workflow.
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/growthdata/growthviz/internal/cli"
	"github.com/growthdata/growthviz/internal/stats"
)

// TableView is one named table in the browser.
type TableView struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Model holds the browser state: the set of tables and which one is
// active.
type Model struct {
	tables   []TableView
	active   int
	table    table.Model
	keymap   KeyMap
	width    int
	height   int
	quitting bool
}

// NewModel creates a browser over the given tables.
func NewModel(tables []TableView) Model {
	m := Model{
		tables: tables,
		keymap: DefaultKeyMap(),
	}
	m.table = m.buildTable(0)
	return m
}

func (m Model) buildTable(idx int) table.Model {
	view := m.tables[idx]

	cols := make([]table.Column, len(view.Columns))
	for i, c := range view.Columns {
		width := len(c)
		for _, row := range view.Rows {
			if i < len(row) && len(row[i]) > width {
				width = len(row[i])
			}
		}
		cols[i] = table.Column{Title: c, Width: width + 2}
	}

	rows := make([]table.Row, len(view.Rows))
	for i, r := range view.Rows {
		rows[i] = table.Row(r)
	}

	height := m.height - 4
	if height < 5 {
		height = 15
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(cli.PrimaryColor)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return t
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.buildTable(m.active)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.NextTable):
			m.active = (m.active + 1) % len(m.tables)
			m.table = m.buildTable(m.active)
			return m, nil
		case key.Matches(msg, m.keymap.PrevTable):
			m.active = (m.active - 1 + len(m.tables)) % len(m.tables)
			m.table = m.buildTable(m.active)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := cli.TitleStyle.Render(m.tables[m.active].Name)
	position := cli.SubtleStyle.Render(
		" (" + strconv.Itoa(m.active+1) + "/" + strconv.Itoa(len(m.tables)) + ")")
	help := cli.SubtleStyle.Render("tab: switch table • ↑/↓: scroll • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title+position,
		m.table.View(),
		help,
	)
}

// Run starts the browser and blocks until the user quits.
func Run(tables []TableView) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := tea.NewProgram(NewModel(tables), tea.WithAltScreen()).Run()
	return err
}

// BMIStatsTable converts BMI summary rows into a browsable table.
func BMIStatsTable(rows []stats.BMIStatsRow) TableView {
	view := TableView{
		Name: "BMI Statistics",
		Columns: []string{
			"sex", "age", "min_clean", "mean_clean", "max_clean", "sd_clean", "count_clean",
			"min_raw", "mean_raw", "max_raw", "sd_raw", "count_raw", "count_diff",
		},
	}
	for _, row := range rows {
		view.Rows = append(view.Rows, []string{
			row.Sex,
			strconv.Itoa(row.RoundedAge),
			cli.FormatFloat(row.MinClean), cli.FormatFloat(row.MeanClean),
			cli.FormatFloat(row.MaxClean), cli.FormatFloat(row.SDClean),
			strconv.Itoa(row.CountClean),
			cli.FormatFloat(row.MinRaw), cli.FormatFloat(row.MeanRaw),
			cli.FormatFloat(row.MaxRaw), cli.FormatFloat(row.SDRaw),
			strconv.Itoa(row.CountRaw),
			strconv.Itoa(row.CountDiff),
		})
	}
	return view
}

// ExclusionsTable converts exclusion summary rows into a browsable
// table.
func ExclusionsTable(rows []stats.ExclusionRow) TableView {
	view := TableView{
		Name:    "Exclusions",
		Columns: []string{"category", "HEIGHTCM", "height %", "WEIGHTKG", "weight %", "total"},
	}
	for _, row := range rows {
		view.Rows = append(view.Rows, []string{
			string(row.Category),
			strconv.Itoa(row.HeightCount),
			cli.FormatPercent(row.HeightPercent),
			strconv.Itoa(row.WeightCount),
			cli.FormatPercent(row.WeightPercent),
			strconv.Itoa(row.Total),
		})
	}
	return view
}
