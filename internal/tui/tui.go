package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/confirm"
	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/shopping"
	"github.com/idilsaglam/shoplist/internal/ui"
)

// listItem adapts a ShoppingItem to bubbles/list.Item.
type listItem struct{ model.ShoppingItem }

func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return i.Quantity }
func (i listItem) FilterValue() string { return i.Name }

// itemDelegate renders one line per item.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+ui.ItemLine(it.ShoppingItem))
}

type mode int

const (
	browsing mode = iota
	adding
	editing
	confirming
)

// reloadMsg asks the model to re-read the durable slot.
type reloadMsg struct{}

// Model is the interactive list. Every gesture goes straight to the Store,
// which persists it; quitting has nothing left to save.
type Model struct {
	ctx   context.Context
	store *shopping.Store
	log   *zap.Logger

	list list.Model
	mode mode

	name, qty textinput.Model
	focusQty  bool
	editID    string
	deleteID  string
	formErr   string

	width, height int
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "bought"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	clearBind  = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear bought"))
)

func New(ctx context.Context, s *shopping.Store, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{addBind, editBind, toggleBind, deleteBind}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{addBind, editBind, toggleBind, deleteBind, clearBind}
	}

	name := textinput.New()
	name.Prompt = "Name > "
	name.Placeholder = "Enter item name"
	name.CharLimit = 200

	qty := textinput.New()
	qty.Prompt = "Qty  > "
	qty.Placeholder = "Qty"
	qty.CharLimit = 40

	m := Model{
		ctx:    ctx,
		store:  s,
		log:    log,
		list:   l,
		name:   name,
		qty:    qty,
		width:  80,
		height: 24,
	}
	m.refresh()
	m.resize()
	return m
}

// Run starts the program on the alt screen. watch, when non-nil, is
// started alongside and should call its callback whenever the durable
// slot changes underneath us.
func Run(ctx context.Context, s *shopping.Store, log *zap.Logger, watch func(context.Context, func()) error) error {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, s, log), tea.WithAltScreen(), tea.WithContext(ctx))
	if watch != nil {
		go func() {
			if err := watch(ctx, func() { p.Send(reloadMsg{}) }); err != nil {
				log.Warn("watch stopped", zap.Error(err))
			}
		}()
	}
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case reloadMsg:
		// Let our own pending writes land first so they are not undone.
		if err := m.store.Flush(m.ctx); err != nil {
			m.log.Warn("reload skipped", zap.Error(err))
			return m, nil
		}
		m.log.Debug("reloading shopping list")
		m.store.Load(m.ctx)
		return m, m.refresh()
	}

	switch m.mode {
	case adding, editing:
		return m.updateForm(msg)
	case confirming:
		return m.updateConfirm(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, isKey := msg.(tea.KeyMsg)
	if !isKey || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q", "esc":
		if km.String() == "esc" && m.list.FilterState() == list.FilterApplied {
			break
		}
		return m, tea.Quit
	case " ":
		if it, ok := m.selected(); ok {
			m.store.TogglePurchased(it.ID)
			return m, m.refresh()
		}
		return m, nil
	case "d":
		if it, ok := m.selected(); ok {
			m.mode = confirming
			m.deleteID = it.ID
			m.resize()
		}
		return m, nil
	case "c":
		if n := m.store.ClearPurchased(); n > 0 {
			return m, m.refresh()
		}
		return m, nil
	case "a":
		m.mode = adding
		m.editID = ""
		return m, m.openForm("", "")
	case "e":
		if it, ok := m.selected(); ok {
			m.mode = editing
			m.editID = it.ID
			return m, m.openForm(it.Name, it.Quantity)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.closeForm()
			return m, nil
		case "tab", "shift+tab", "up", "down":
			return m, m.setFocus(!m.focusQty)
		case "enter":
			return m.submitForm()
		}
	}
	var cmd tea.Cmd
	if m.focusQty {
		m.qty, cmd = m.qty.Update(msg)
	} else {
		m.name, cmd = m.name.Update(msg)
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.name.Value())
	if name == "" {
		m.formErr = "Name cannot be empty"
		return m, nil
	}
	qty := strings.TrimSpace(m.qty.Value())

	var selectID string
	if m.mode == adding {
		it, ok := m.store.Add(name, qty)
		if !ok {
			m.formErr = "Could not add item"
			return m, nil
		}
		selectID = it.ID
	} else {
		// The item may have vanished in a reload; Edit is then a no-op.
		m.store.Edit(m.editID, name, qty)
		selectID = m.editID
	}
	m.closeForm()
	cmd := m.refresh()
	m.selectID(selectID)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(km.String()) {
	case "y", "d", "enter":
		m.store.Delete(m.deleteID)
		m.mode, m.deleteID = browsing, ""
		m.resize()
		return m, m.refresh()
	case "n", "c", "esc", "q":
		m.mode, m.deleteID = browsing, ""
		m.resize()
	}
	return m, nil
}

func (m *Model) openForm(name, qty string) tea.Cmd {
	m.formErr = ""
	m.name.SetValue(name)
	m.name.CursorEnd()
	m.qty.SetValue(qty)
	m.qty.CursorEnd()
	m.resize()
	return m.setFocus(false)
}

func (m *Model) closeForm() {
	m.mode = browsing
	m.editID, m.formErr = "", ""
	m.name.SetValue("")
	m.qty.SetValue("")
	m.name.Blur()
	m.qty.Blur()
	m.focusQty = false
	m.resize()
}

func (m *Model) setFocus(qty bool) tea.Cmd {
	m.focusQty = qty
	if qty {
		m.name.Blur()
		return m.qty.Focus()
	}
	m.qty.Blur()
	return m.name.Focus()
}

// refresh rebuilds the list and its header from the Store.
func (m *Model) refresh() tea.Cmd {
	items := m.store.Items()
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{it})
	}
	purchased, pending := shopping.Stats(items)
	m.list.Title = ui.Header(purchased, pending)
	return m.list.SetItems(li)
}

func (m *Model) selected() (model.ShoppingItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.ShoppingItem{}, false
	}
	return it.ShoppingItem, true
}

func (m *Model) selectID(id string) {
	for i, it := range m.list.Items() {
		if li, ok := it.(listItem); ok && li.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m *Model) resize() {
	reserved := 4 // panel border + padding
	if m.mode == adding || m.mode == editing {
		reserved += 5
	}
	if m.mode == confirming {
		reserved += 4
	}
	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	t := ui.Current()
	var content string
	if len(m.list.Items()) == 0 && m.mode != adding {
		content = strings.Join(append([]string{m.list.Title, ""}, ui.EmptyLines()...), "\n") +
			"\n\n" + t.Help.Render("a add • q quit")
	} else {
		content = m.list.View()
	}

	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderColor).Padding(0, 1)
	switch m.mode {
	case adding, editing:
		title := "Add Item"
		if m.mode == editing {
			title = "Edit Item"
		}
		if m.formErr != "" {
			title += "  " + t.Error.Render(m.formErr)
		}
		form := title + "\n" + m.name.View() + "\n" + m.qty.View()
		content += "\n" + box.Render(form)
	case confirming:
		q := t.Title.Render("Delete Item") + "\n" +
			"Are you sure you want to delete this item? " +
			t.Help.Render(fmt.Sprintf("[y] %s  [n] %s", confirm.Delete.Label, confirm.Cancel.Label))
		content += "\n" + box.Render(q)
	}
	return ui.Panel([]string{content})
}
