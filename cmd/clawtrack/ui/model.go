// Package ui provides the interactive terminal interface for clawtrack.
// The interface is split across files:
//   - model.go: types, Init, Update loop (this file)
//   - view.go: rendering
//   - form.go: the add/edit form buffer
//   - styles.go: lipgloss styling
//   - debounce.go: resize debouncing
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"clawtrack/internal/inventory"
	"clawtrack/internal/prize"
)

// viewMode determines which surface has focus.
type viewMode int

const (
	modeList viewMode = iota
	modeForm
	modeDetail
	modeConfirm
)

// SaveStatusMsg reports a saver status transition into the update loop.
type SaveStatusMsg struct {
	Status inventory.Status
}

// resizedMsg carries a debounced terminal size.
type resizedMsg struct {
	width, height int
}

// prizeItem adapts a record for the bubbles list.
type prizeItem struct {
	rec prize.Record
}

func (i prizeItem) Title() string {
	if i.rec.Quantity != 1 {
		return fmt.Sprintf("%s  ×%d", i.rec.Name, i.rec.Quantity)
	}
	return i.rec.Name
}

func (i prizeItem) Description() string {
	desc := fmt.Sprintf("%s · %s · %s", i.rec.Category, i.rec.Manufacturer, i.rec.AcquisitionDate)
	if i.rec.Photo != "" {
		desc += " · 📷"
	}
	return desc
}

func (i prizeItem) FilterValue() string { return i.rec.Name }

// Model is the bubbletea model for the inventory interface.
type Model struct {
	col   *inventory.Collection
	saver *inventory.Saver
	log   *zap.Logger

	styles   Styles
	renderer *glamour.TermRenderer

	mode viewMode

	prizeList list.Model
	search    textinput.Model
	searching bool
	query     inventory.Query

	form *formModel

	// confirmID/confirmName identify the record awaiting delete
	// confirmation.
	confirmID   string
	confirmName string

	detailID string
	detail   viewport.Model

	status inventory.Status

	resize *Debouncer
	send   func(tea.Msg)
	sized  bool

	width, height int
}

// New builds the interface over a hydrated collection.
func New(col *inventory.Collection, saver *inventory.Saver, styles Styles, log *zap.Logger) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.Theme.Primary).
		BorderForeground(styles.Theme.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(styles.Theme.Muted).
		BorderForeground(styles.Theme.Primary)

	l := list.New(nil, delegate, 60, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	// The query view model does the filtering; the list's own filter
	// would fight it.
	l.SetFilteringEnabled(false)

	search := textinput.New()
	search.Placeholder = "search by name"
	search.CharLimit = 80
	search.Width = 30

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		log.Warn("failed to build markdown renderer", zap.Error(err))
	}

	m := Model{
		col:       col,
		saver:     saver,
		log:       log,
		styles:    styles,
		renderer:  renderer,
		prizeList: l,
		search:    search,
		detail:    viewport.New(60, 20),
		resize:    NewDebouncer(DefaultResizeDuration),
	}
	m.refreshList()
	return m
}

// SetSend wires the bubbletea program's Send for messages produced
// outside the update loop (saver status, debounced resizes). Call before
// Run.
func (m *Model) SetSend(send func(tea.Msg)) {
	m.send = send
}

// StatusRelay adapts a program Send into a saver status callback. The
// saver invokes its callback on whichever goroutine triggered the
// transition, which during a keystroke is the event loop itself; the
// hand-off goroutine keeps the send from blocking that loop on its own
// inbox.
func StatusRelay(send func(tea.Msg)) func(inventory.Status) {
	return func(st inventory.Status) {
		go send(SaveStatusMsg{Status: st})
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SaveStatusMsg:
		m.status = msg.Status
		return m, nil

	case tea.WindowSizeMsg:
		// The initial size arrives right after launch; it is applied
		// directly so the first frame already fills the terminal. Only
		// later resizes are debounced.
		if !m.sized || m.send == nil {
			m.sized = true
			return m.applySize(msg.Width, msg.Height), nil
		}
		w, h := msg.Width, msg.Height
		send := m.send
		m.resize.Debounce(func() {
			send(resizedMsg{width: w, height: h})
		})
		return m, nil

	case resizedMsg:
		return m.applySize(msg.width, msg.height), nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) applySize(w, h int) Model {
	m.width, m.height = w, h
	listHeight := h - 6
	if listHeight < 5 {
		listHeight = 5
	}
	m.prizeList.SetSize(w-4, listHeight)
	m.detail.Width = w - 4
	m.detail.Height = listHeight
	return m
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.resize.Cancel()
		return m, tea.Quit
	}

	switch m.mode {
	case modeForm:
		return m.updateFormKey(msg)
	case modeConfirm:
		return m.updateConfirmKey(msg)
	case modeDetail:
		return m.updateDetailKey(msg)
	default:
		return m.updateListKey(msg)
	}
}

func (m Model) updateListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.query.Search = ""
			m.refreshList()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.query.Search = m.search.Value()
			m.refreshList()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		m.resize.Cancel()
		return m, tea.Quit

	case "a":
		m.form = newForm(m.styles, nil)
		m.mode = modeForm
		return m, textinput.Blink

	case "e":
		if rec, ok := m.selected(); ok {
			m.form = newForm(m.styles, &rec)
			m.mode = modeForm
			return m, textinput.Blink
		}

	case "enter":
		if rec, ok := m.selected(); ok {
			m.detailID = rec.Identifier
			m.detail.SetContent(m.renderDetail(rec))
			m.detail.GotoTop()
			m.mode = modeDetail
		}

	case "d":
		if rec, ok := m.selected(); ok {
			m.confirmID = rec.Identifier
			m.confirmName = rec.Name
			m.mode = modeConfirm
		}

	case "+", "=":
		if rec, ok := m.selected(); ok {
			m.col.AdjustQuantity(rec.Identifier, 1)
			m.refreshList()
		}

	case "-":
		if rec, ok := m.selected(); ok {
			m.col.AdjustQuantity(rec.Identifier, -1)
			m.refreshList()
		}

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "c":
		m.query.Category = nextCategoryFilter(m.query.Category)
		m.refreshList()

	case "s":
		m.query.Sort = m.query.Sort.Next()
		m.refreshList()
	}

	var cmd tea.Cmd
	m.prizeList, cmd = m.prizeList.Update(msg)
	return m, cmd
}

func (m Model) updateFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// The outside-click analog: leaving the form cancels it.
		m.form = nil
		m.mode = modeList
		return m, nil

	case "ctrl+s", "enter":
		// Enter inside the notes textarea inserts a newline.
		if msg.String() == "enter" && m.form.focus == fieldNotes {
			break
		}
		rec, ok := m.form.submit()
		if !ok {
			return m, nil
		}
		m.col.Upsert(rec)
		m.form = nil
		m.mode = modeList
		m.refreshList()
		m.selectRecord(rec.Identifier)
		return m, nil
	}

	cmd := m.form.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.confirmID
		m.col.Remove(id)
		// Deleting the record currently open in the form closes the form.
		if m.form != nil && m.form.editingID == id {
			m.form = nil
		}
		if m.detailID == id {
			m.detailID = ""
		}
		m.confirmID = ""
		m.confirmName = ""
		m.mode = modeList
		m.refreshList()
		return m, nil

	case "n", "esc":
		// Declining aborts with no state change.
		m.confirmID = ""
		m.confirmName = ""
		m.mode = modeList
		return m, nil
	}
	return m, nil
}

func (m Model) updateDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.detailID = ""
		m.mode = modeList
		return m, nil

	case "e":
		if rec, ok := m.col.Get(m.detailID); ok {
			m.form = newForm(m.styles, &rec)
			m.mode = modeForm
			return m, textinput.Blink
		}

	case "d":
		if rec, ok := m.col.Get(m.detailID); ok {
			m.confirmID = rec.Identifier
			m.confirmName = rec.Name
			m.mode = modeConfirm
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeForm:
		cmd = m.form.Update(msg)
	case modeDetail:
		m.detail, cmd = m.detail.Update(msg)
	default:
		m.prizeList, cmd = m.prizeList.Update(msg)
	}
	return m, cmd
}

// refreshList recomputes the projection and swaps it into the list.
func (m *Model) refreshList() {
	projection := m.query.Apply(m.col.Records())
	items := make([]list.Item, len(projection))
	for i, rec := range projection {
		items[i] = prizeItem{rec: rec}
	}
	m.prizeList.SetItems(items)
}

// selected returns the record under the cursor.
func (m Model) selected() (prize.Record, bool) {
	item, ok := m.prizeList.SelectedItem().(prizeItem)
	if !ok {
		return prize.Record{}, false
	}
	return item.rec, true
}

// selectRecord moves the cursor to the record with the given identifier,
// if it is in the current projection.
func (m *Model) selectRecord(id string) {
	for i, item := range m.prizeList.Items() {
		if pi, ok := item.(prizeItem); ok && pi.rec.Identifier == id {
			m.prizeList.Select(i)
			return
		}
	}
}

// nextCategoryFilter cycles all -> plush -> ... -> other -> all.
func nextCategoryFilter(current prize.Category) prize.Category {
	cats := prize.Categories()
	if current == "" || current == prize.CategoryAll {
		return cats[0]
	}
	for i, c := range cats {
		if c == current {
			if i == len(cats)-1 {
				return prize.CategoryAll
			}
			return cats[i+1]
		}
	}
	return prize.CategoryAll
}
