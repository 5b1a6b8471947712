package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sadopc/katsayi/internal/calc"
	"github.com/sadopc/katsayi/internal/prefs"
	"github.com/sadopc/katsayi/internal/record"
)

type formMode int

const (
	formNew formMode = iota
	formEdit
)

type recordsModel struct {
	records *record.Store
	prefs   *prefs.Store
	log     *zap.Logger
	width   int
	height  int

	cursor int

	filtering bool
	filter    textinput.Model

	formActive bool
	form       *huh.Form
	mode       formMode
	fields     recordForm
	minDate    time.Time
}

func newRecordsModel(recs *record.Store, p *prefs.Store, log *zap.Logger) recordsModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "city"
	return recordsModel{
		records: recs,
		prefs:   p,
		log:     log,
		filter:  ti,
		fields:  newRecordForm(),
		minDate: defaultMinDate,
	}
}

func (m *recordsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// capturing reports whether key input belongs to this view.
func (m recordsModel) capturing() bool {
	return m.formActive || m.filtering
}

// visible returns the records matching the current filter, in store order.
func (m recordsModel) visible() []record.Record {
	all := m.records.Records()
	q := strings.TrimSpace(m.filter.Value())
	if q == "" {
		return all
	}
	var out []record.Record
	for _, r := range all {
		if fuzzy.MatchFold(q, r.City) {
			out = append(out, r)
		}
	}
	return out
}

// selectedIndex maps the cursor to a position in the store.
func (m recordsModel) selectedIndex() (int, bool) {
	vis := m.visible()
	if m.cursor < 0 || m.cursor >= len(vis) {
		return -1, false
	}
	idx := m.records.IndexOf(vis[m.cursor].ID)
	return idx, idx >= 0
}

func (m *recordsModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m recordsModel) update(msg tea.Msg) (recordsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case recordsChangedMsg:
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m recordsModel) updateList(msg tea.KeyMsg) (recordsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.New):
		return m.showNewForm()
	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
		if idx, ok := m.selectedIndex(); ok {
			return m.showEditForm(idx)
		}
	case key.Matches(msg, keys.Delete):
		if idx, ok := m.selectedIndex(); ok {
			return m.remove(idx)
		}
	case key.Matches(msg, keys.Clear):
		if m.records.Len() > 0 {
			return m.clearAll()
		}
	case key.Matches(msg, keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, keys.Back):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.cursor = 0
		}
	}
	return m, nil
}

func (m recordsModel) updateFilter(msg tea.KeyMsg) (recordsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.cursor = 0
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m recordsModel) settingsMinDate() time.Time {
	if m.prefs == nil {
		return defaultMinDate
	}
	return minDateSetting(m.prefs.SettingOr(prefs.KeyMinDate, ""))
}

func (m recordsModel) defaultCoefficient() decimal.Decimal {
	if m.prefs == nil {
		return decimal.Zero
	}
	d, err := parseCoefficient(m.prefs.SettingOr(prefs.KeyDefaultCoefficient, "0"))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (m recordsModel) showNewForm() (recordsModel, tea.Cmd) {
	m.mode = formNew
	m.minDate = m.settingsMinDate()
	m.fields.reset(today(), m.defaultCoefficient())
	m.form = m.fields.build(m.minDate)
	m.formActive = true
	return m, m.form.Init()
}

// showEditForm makes the record at idx the edit target and seeds the form
// from it.
func (m recordsModel) showEditForm(idx int) (recordsModel, tea.Cmd) {
	if err := m.records.BeginEdit(idx); err != nil {
		return m, m.contractError("edit", err)
	}
	r, _ := m.records.Editing()
	m.mode = formEdit
	m.minDate = m.settingsMinDate()
	if r.Start.Before(m.minDate) {
		m.minDate = r.Start
	}
	if r.End.Before(m.minDate) {
		m.minDate = r.End
	}
	m.fields.load(r)
	m.form = m.fields.build(m.minDate)
	m.formActive = true
	m.log.Debug("edit started", zap.Int("index", idx), zap.String("city", r.City))
	return m, m.form.Init()
}

func (m recordsModel) updateForm(msg tea.Msg) (recordsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			return m.cancelForm(), nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.submit()
	}
	return m, cmd
}

func (m recordsModel) cancelForm() recordsModel {
	if m.mode == formEdit {
		m.records.CancelEdit()
		m.log.Debug("edit cancelled")
	}
	m.formActive = false
	m.form = nil
	return m
}

// submit saves the form as a new record or as the update of the edit target.
func (m recordsModel) submit() (recordsModel, tea.Cmd) {
	m.formActive = false
	m.form = nil

	r, err := m.fields.record(m.minDate)
	if err != nil {
		if m.mode == formEdit {
			m.records.CancelEdit()
		}
		return m, notifyErr(fmt.Sprintf("Invalid record: %v", err))
	}

	if m.mode == formEdit {
		if err := m.records.CommitEdit(r); err != nil {
			return m, m.contractError("update", err)
		}
		m.log.Debug("record updated", zap.String("city", r.City))
		return m, tea.Batch(notify("Record updated"), recordsChanged)
	}

	stored := m.records.Add(r)
	m.log.Debug("record added", zap.String("id", stored.ID.String()), zap.String("city", stored.City))
	m.cursor = max(0, len(m.visible())-1)
	return m, tea.Batch(notify(fmt.Sprintf("%s added", displayCity(r.City))), recordsChanged)
}

func (m recordsModel) remove(idx int) (recordsModel, tea.Cmd) {
	if err := m.records.Remove(idx); err != nil {
		return m, m.contractError("delete", err)
	}
	m.log.Debug("record deleted", zap.Int("index", idx))
	m.clampCursor()
	return m, tea.Batch(notify("Record deleted"), recordsChanged)
}

func (m recordsModel) clearAll() (recordsModel, tea.Cmd) {
	n := m.records.Len()
	m.records.Clear()
	m.cursor = 0
	m.log.Debug("records cleared", zap.Int("count", n))
	return m, tea.Batch(notify("All records cleared"), recordsChanged)
}

// contractError reports an index or edit-state violation. These indicate a
// UI bug, not a user mistake.
func (m recordsModel) contractError(action string, err error) tea.Cmd {
	m.log.Error("record store rejected action", zap.String("action", action), zap.Error(err))
	switch {
	case errors.Is(err, record.ErrIndexOutOfRange):
		return notifyErr("That record no longer exists")
	case errors.Is(err, record.ErrNoActiveEdit):
		return notifyErr("No record is being edited")
	}
	return notifyErr(fmt.Sprintf("Error: %v", err))
}

func (m recordsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Record")
		if m.mode == formEdit {
			title = titleStyle.Render("Edit Record")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return activePanelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render(fmt.Sprintf("Records (%d)", m.records.Len()))

	if m.records.Len() == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No records yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	if m.filtering || m.filter.Value() != "" {
		rows = append(rows, m.filter.View())
	}
	rows = append(rows, "")

	vis := m.visible()
	if len(vis) == 0 {
		rows = append(rows, mutedStyle.Render("  No records match the filter"))
	}
	for i, r := range vis {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+formatRecordLine(r)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  C: clear all  /: filter  x: export"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func formatRecordLine(r record.Record) string {
	return fmt.Sprintf("%s | %s - %s | Reported: %d days | Coefficient: %s",
		displayCity(r.City),
		r.Start.Format(record.DateLayout),
		r.End.Format(record.DateLayout),
		r.ReportedDays,
		r.Coefficient.StringFixed(calc.Places),
	)
}

func displayCity(city string) string {
	if city == "" {
		return "(no city)"
	}
	return city
}
