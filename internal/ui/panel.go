package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nexusriot/anacreon/internal/settings"
)

type panelMode int

const (
	modeBrowse panelMode = iota
	modeForm
	modeConfirm
	modeSearch
)

// row is what a settings panel shows for one record.
type row struct {
	name   string
	desc   string
	active bool
}

// panel is the list + inline form used by the Businesses and Categories tabs.
type panel[T settings.Record[T]] struct {
	title  string
	store  settings.Store[T]
	rowOf  func(T) row
	items  []T
	cursor int

	mode   panelMode
	editID int // 0 while creating
	focus  int
	name   textinput.Model
	desc   textinput.Model

	search textinput.Model
	query  string

	status string
	err    error
}

func newPanel[T settings.Record[T]](title string, store settings.Store[T], rowOf func(T) row) panel[T] {
	name := textinput.New()
	name.Placeholder = "name"
	name.Prompt = "Name: "
	name.CharLimit = 80

	desc := textinput.New()
	desc.Placeholder = "description"
	desc.Prompt = "Description: "
	desc.CharLimit = 200

	search := textinput.New()
	search.Placeholder = "search name / description"
	search.Prompt = "/ "
	search.CharLimit = 64

	p := panel[T]{
		title:  title,
		store:  store,
		rowOf:  rowOf,
		name:   name,
		desc:   desc,
		search: search,
	}
	p.reload()
	return p
}

// capturing reports whether the panel wants every keystroke: an open
// form, the search prompt, or a pending delete confirmation.
func (p panel[T]) capturing() bool {
	return p.mode != modeBrowse
}

func (p *panel[T]) reload() {
	p.items = p.store.List()
	p.cursor = min(p.cursor, max(0, len(p.visible())-1))
}

func (p panel[T]) visible() []T {
	if p.query == "" {
		return p.items
	}
	out := make([]T, 0, len(p.items))
	for _, it := range p.items {
		r := p.rowOf(it)
		if matchFold(r.name, p.query) || matchFold(r.desc, p.query) {
			out = append(out, it)
		}
	}
	return out
}

func (p panel[T]) selected() (T, bool) {
	vis := p.visible()
	if p.cursor < 0 || p.cursor >= len(vis) {
		var zero T
		return zero, false
	}
	return vis[p.cursor], true
}

func (p panel[T]) update(msg tea.KeyMsg) (panel[T], tea.Cmd) {
	switch p.mode {
	case modeForm:
		return p.updateForm(msg)
	case modeSearch:
		return p.updateSearch(msg)
	case modeConfirm:
		return p.updateConfirm(msg)
	}

	switch msg.String() {
	case "up", "k":
		p.cursor = max(0, p.cursor-1)
	case "down", "j":
		p.cursor = min(max(0, len(p.visible())-1), p.cursor+1)
	case "home", "g":
		p.cursor = 0
	case "end", "G":
		p.cursor = max(0, len(p.visible())-1)
	case "n":
		return p.openForm(0, row{}), textinput.Blink
	case "e", "enter":
		if it, ok := p.selected(); ok {
			return p.openForm(it.RecordID(), p.rowOf(it)), textinput.Blink
		}
	case " ":
		if it, ok := p.selected(); ok {
			rec, err := p.store.Toggle(it.RecordID())
			p.setResult(err, "toggled %q", p.rowOf(rec).name)
			p.reload()
		}
	case "d", "delete":
		if _, ok := p.selected(); ok {
			p.mode = modeConfirm
		}
	case "/":
		p.mode = modeSearch
		p.search.SetValue(p.query)
		p.search.Focus()
		return p, textinput.Blink
	case "ctrl+u":
		p.query = ""
		p.search.SetValue("")
		p.reload()
	}
	return p, nil
}

func (p panel[T]) openForm(id int, r row) panel[T] {
	p.mode = modeForm
	p.editID = id
	p.focus = 0
	p.name.SetValue(r.name)
	p.desc.SetValue(r.desc)
	p.name.Focus()
	p.desc.Blur()
	p.status, p.err = "", nil
	return p
}

func (p panel[T]) updateForm(msg tea.KeyMsg) (panel[T], tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.mode = modeBrowse
		p.name.Blur()
		p.desc.Blur()
		return p, nil
	case "tab", "shift+tab", "up", "down":
		p.focus = 1 - p.focus
		if p.focus == 0 {
			p.name.Focus()
			p.desc.Blur()
		} else {
			p.desc.Focus()
			p.name.Blur()
		}
		return p, nil
	case "enter":
		return p.submit(), nil
	}

	var cmd tea.Cmd
	if p.focus == 0 {
		p.name, cmd = p.name.Update(msg)
	} else {
		p.desc, cmd = p.desc.Update(msg)
	}
	return p, cmd
}

func (p panel[T]) submit() panel[T] {
	name := p.name.Value()
	desc := strings.TrimSpace(p.desc.Value())
	patch := settings.Patch{Name: &name, Description: &desc}

	var (
		rec T
		err error
	)
	if p.editID == 0 {
		rec, err = p.store.Create(patch)
		p.setResult(err, "created %q", p.rowOf(rec).name)
	} else {
		rec, err = p.store.Update(p.editID, patch)
		p.setResult(err, "saved %q", p.rowOf(rec).name)
	}

	p.mode = modeBrowse
	p.name.Blur()
	p.desc.Blur()
	p.reload()
	if err == nil {
		p.selectID(rec.RecordID())
	}
	return p
}

func (p panel[T]) updateConfirm(msg tea.KeyMsg) (panel[T], tea.Cmd) {
	p.mode = modeBrowse
	if msg.String() != "y" && msg.String() != "Y" {
		p.status = "delete cancelled"
		return p, nil
	}
	if it, ok := p.selected(); ok {
		err := p.store.Delete(it.RecordID())
		p.setResult(err, "deleted %q", p.rowOf(it).name)
		p.reload()
	}
	return p, nil
}

func (p panel[T]) updateSearch(msg tea.KeyMsg) (panel[T], tea.Cmd) {
	switch msg.String() {
	case "enter":
		p.query = strings.TrimSpace(p.search.Value())
		p.mode = modeBrowse
		p.search.Blur()
		p.cursor = 0
		return p, nil
	case "esc":
		p.mode = modeBrowse
		p.search.Blur()
		return p, nil
	case "ctrl+u":
		p.search.SetValue("")
		return p, nil
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	return p, cmd
}

func (p *panel[T]) selectID(id int) {
	for i, it := range p.visible() {
		if it.RecordID() == id {
			p.cursor = i
			return
		}
	}
}

func (p *panel[T]) setResult(err error, format string, args ...any) {
	p.err = err
	p.status = ""
	if err == nil {
		p.status = fmt.Sprintf(format, args...)
	}
}

func (p panel[T]) view(st styles, w, h int) string {
	var b strings.Builder

	switch {
	case p.mode == modeSearch:
		b.WriteString(p.search.View())
	case p.query != "":
		b.WriteString(st.subtle.Render("Filter: ") + st.title.Render(p.query) + st.subtle.Render("  (ctrl+u to clear)"))
	default:
		b.WriteString(st.subtle.Render("n new • e edit • space toggle • d delete • / search"))
	}
	b.WriteString("\n\n")

	if p.mode == modeForm {
		heading := "New " + strings.ToLower(p.title)
		if p.editID != 0 {
			heading = fmt.Sprintf("Edit #%d", p.editID)
		}
		b.WriteString(st.title.Render(heading) + "\n")
		b.WriteString(p.name.View() + "\n")
		b.WriteString(p.desc.View() + "\n")
		b.WriteString(st.subtle.Render("enter save • tab switch field • esc cancel") + "\n\n")
	}

	colID := 4
	colState := 9
	colName := min(28, max(10, (w-colID-colState-6)/2))
	colDesc := max(5, w-colID-colState-colName-6)

	b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
		padRight("ID", colID), padRight("NAME", colName), padRight("STATUS", colState), "DESCRIPTION"))
	b.WriteString(strings.Repeat("─", max(0, min(w, colID+colName+colState+colDesc+6))) + "\n")

	vis := p.visible()
	if len(vis) == 0 {
		if p.query != "" {
			b.WriteString(st.subtle.Render("No matches.") + "\n")
		} else {
			b.WriteString(st.subtle.Render("Nothing here yet. Press n to add one.") + "\n")
		}
	}

	// keep the cursor on screen
	rows := max(1, h-lineCount(b.String())-3)
	start := 0
	if p.cursor >= rows {
		start = p.cursor - rows + 1
	}
	end := min(len(vis), start+rows)

	for i := start; i < end; i++ {
		it := vis[i]
		r := p.rowOf(it)
		state := st.ok.Render(padRight("active", colState))
		if !r.active {
			state = st.subtle.Render(padRight("inactive", colState))
		}
		name := highlightFold(padRight(trunc(r.name, colName), colName), p.query, st.hl)
		desc := highlightFold(trunc(r.desc, colDesc), p.query, st.hl)
		line := fmt.Sprintf("%s  %s  %s  %s", padRight(fmt.Sprint(it.RecordID()), colID), name, state, desc)
		if i == p.cursor && p.mode != modeForm {
			line = st.selected.Render(clipWidth(stripStyles(line), w))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	switch {
	case p.mode == modeConfirm:
		if it, ok := p.selected(); ok {
			b.WriteString(st.warn.Render(fmt.Sprintf("Delete %q? y to confirm, any other key cancels", p.rowOf(it).name)))
		}
	case p.err != nil:
		b.WriteString(st.err.Render("Error: " + p.err.Error()))
	case p.status != "":
		b.WriteString(st.subtle.Render(p.status))
	}
	return b.String()
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}
