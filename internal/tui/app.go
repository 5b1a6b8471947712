package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sadopc/katsayi/internal/calc"
	"github.com/sadopc/katsayi/internal/export"
	"github.com/sadopc/katsayi/internal/logger"
	"github.com/sadopc/katsayi/internal/prefs"
	"github.com/sadopc/katsayi/internal/record"
)

type exportFormat struct {
	label string
	kinds []string
}

var exportFormats = []exportFormat{
	{"Spreadsheet (.xlsx)", []string{prefs.KindXLSX}},
	{"Chart (.pdf)", []string{prefs.KindPDF}},
	{"Table (.csv)", []string{prefs.KindCSV}},
	{"Spreadsheet + chart", []string{prefs.KindXLSX, prefs.KindPDF}},
}

// App is the root Bubble Tea model.
type App struct {
	records *record.Store
	prefs   *prefs.Store
	log     *zap.Logger
	width   int
	height  int

	// exportDir is used when no export directory is stored in prefs.
	exportDir string

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	list     recordsModel
	results  resultsModel
	settings settingsModel

	help      help.Model
	status    string
	statusErr bool
}

// NewApp wires the views to one session's record store.
func NewApp(recs *record.Store, p *prefs.Store, exportDir string, log *zap.Logger) App {
	log = logger.Named(log, "tui")
	h := help.New()
	h.ShowAll = false

	a := App{
		records:    recs,
		prefs:      p,
		log:        log,
		exportDir:  exportDir,
		activeView: viewRecords,
		list:       newRecordsModel(recs, p, log.Named("records")),
		results:    newResultsModel(),
		settings:   newSettingsModel(p, log.Named("settings"), exportDir),
		help:       h,
	}
	a.results.load(recs.Records())
	return a
}

func (a App) Init() tea.Cmd {
	return a.settings.refresh()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.list.setSize(a.width, contentHeight)
		a.results.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			if a.records.Len() == 0 {
				return a, notifyErr("No records to export")
			}
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewRecords
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewResults
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case recordsChangedMsg:
		a.results.load(a.records.Records())
		var cmd tea.Cmd
		a.list, cmd = a.list.update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = fmt.Sprintf("Exported %d file(s) to %s", len(msg.paths), a.exportTarget())
		a.statusErr = false
		return a, a.settings.refresh()

	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewRecords:
		a.list, cmd = a.list.update(msg)
	case viewResults:
		a.results, cmd = a.results.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewRecords:
		return a.list.capturing()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	if a.activeView == viewSettings {
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewRecords:
		content = a.list.view()
	case viewResults:
		content = a.results.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("katsayi")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := successStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	editing := ""
	if r, ok := a.records.Editing(); ok {
		editing = warningStyle.Render(" ✎ " + displayCity(r.City))
	}

	left := footerStyle.Render(helpView)
	right := editing + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render("to "+a.exportTarget()))
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f.label))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(exportFormats[a.exportCursor].kinds...)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) exportTarget() string {
	if a.prefs == nil {
		return a.exportDir
	}
	return a.prefs.SettingOr(prefs.KeyExportDir, a.exportDir)
}

// doExport writes the current results snapshot. The rows, total and chart
// are the ones the Results view is showing. Files render concurrently; the
// history is written afterwards in picker order.
func (a App) doExport(kinds ...string) tea.Cmd {
	rows, total, chart := a.results.rows, a.results.total, a.results.chart
	dir := a.exportTarget()
	log := a.log.Named("export")

	return func() tea.Msg {
		paths := make([]string, len(kinds))
		var g errgroup.Group
		for i, kind := range kinds {
			g.Go(func() error {
				name, render := exportRenderer(kind, rows, total, chart)
				path, err := export.ToFile(dir, name, render)
				if err != nil {
					return fmt.Errorf("%s: %w", kind, err)
				}
				paths[i] = path
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			log.Error("export failed", zap.String("dir", dir), zap.Error(err))
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		for i, kind := range kinds {
			log.Info("exported", zap.String("kind", kind), zap.String("path", paths[i]),
				zap.Int("records", len(rows)), zap.String("total", total.String()))
			if a.prefs == nil {
				continue
			}
			if _, err := a.prefs.RecordExport(kind, paths[i], len(rows), total); err != nil {
				log.Warn("record export history", zap.Error(err))
			}
		}
		return exportDoneMsg{paths: paths}
	}
}

func exportRenderer(kind string, rows []calc.Row, total decimal.Decimal, chart export.Chart) (string, func(io.Writer) error) {
	switch kind {
	case prefs.KindPDF:
		return export.FileNamePDF, func(w io.Writer) error { return export.WriteChartPDF(w, chart) }
	case prefs.KindCSV:
		return export.FileNameCSV, func(w io.Writer) error { return export.WriteCSV(w, rows, total) }
	default:
		return export.FileNameXLSX, func(w io.Writer) error { return export.WriteXLSX(w, rows, total) }
	}
}
