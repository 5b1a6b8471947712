package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/katsayi/internal/calc"
	"github.com/sadopc/katsayi/internal/prefs"
	"github.com/sadopc/katsayi/internal/record"
)

const recentExports = 5

type settingsModel struct {
	prefs  *prefs.Store
	log    *zap.Logger
	width  int
	height int

	// exportDirDefault is shown when no export directory is stored.
	exportDirDefault string

	settings   []prefs.Setting
	exports    []prefs.Export
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	exportDir   *string
	minDate     *string
	coefficient *string
}

func newSettingsModel(p *prefs.Store, log *zap.Logger, exportDirDefault string) settingsModel {
	ed, md, dc := "", "", ""
	return settingsModel{
		prefs:            p,
		log:              log,
		exportDirDefault: exportDirDefault,
		exportDir:        &ed,
		minDate:          &md,
		coefficient:      &dc,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []prefs.Setting
	exports  []prefs.Export
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.prefs.GetAllSettings()
		exports, _ := s.prefs.ListExports(recentExports)
		return settingsDataMsg{settings: settings, exports: exports}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		s.exports = msg.exports
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.exportDir = s.prefs.SettingOr(prefs.KeyExportDir, s.exportDirDefault)
	*s.minDate = s.prefs.SettingOr(prefs.KeyMinDate, defaultMinDate.Format(record.DateLayout))
	*s.coefficient = s.prefs.SettingOr(prefs.KeyDefaultCoefficient, "0.000")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Export directory").Value(s.exportDir),
		).Title("Export"),
		huh.NewGroup(
			huh.NewInput().Title("Earliest date").Description("DD.MM.YYYY").Value(s.minDate).
				Validate(func(v string) error {
					_, err := parseDate(v, minRepresentableDate)
					return err
				}),
			huh.NewInput().Title("Default coefficient").Value(s.coefficient).
				Validate(func(v string) error {
					_, err := parseCoefficient(v)
					return err
				}),
		).Title("Form"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if err := s.saveSettings(); err != nil {
			s.log.Error("save settings", zap.Error(err))
			return s, notifyErr(fmt.Sprintf("Settings error: %v", err))
		}
		return s, tea.Batch(s.refresh(), notify("Settings saved"))
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	minDate, err := parseDate(*s.minDate, minRepresentableDate)
	if err != nil {
		return fmt.Errorf("earliest date: %w", err)
	}
	coef, err := parseCoefficient(*s.coefficient)
	if err != nil {
		return fmt.Errorf("default coefficient: %w", err)
	}
	exportDir := *s.exportDir
	if exportDir == s.exportDirDefault {
		exportDir = ""
	}

	values := []prefs.Setting{
		{Key: prefs.KeyExportDir, Value: exportDir},
		{Key: prefs.KeyMinDate, Value: minDate.Format(record.DateLayout)},
		{Key: prefs.KeyDefaultCoefficient, Value: coef.StringFixed(calc.Places)},
	}
	for _, v := range values {
		if err := s.prefs.SetSetting(v.Key, v.Value); err != nil {
			return err
		}
	}
	s.log.Info("settings saved", zap.String("export_dir", exportDir), zap.String("min_date", minDate.Format(record.DateLayout)))
	return nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(s.formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, titleStyle.Render("Recent exports"))
	if len(s.exports) == 0 {
		rows = append(rows, mutedStyle.Render("  None yet"))
	}
	for _, e := range s.exports {
		rows = append(rows, fmt.Sprintf("  %s  %-4s %3d records  total %s  %s",
			e.CreatedAt.Local().Format("02.01.2006 15:04"),
			e.Kind,
			e.RecordCount,
			e.Total.StringFixed(calc.Places),
			mutedStyle.Render(e.Path),
		))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) formatSettingValue(k, v string) string {
	if k == prefs.KeyExportDir && v == "" {
		return s.exportDirDefault + mutedStyle.Render(" (default)")
	}
	return v
}
