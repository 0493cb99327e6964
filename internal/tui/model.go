package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todopad/internal/app"
	"todopad/internal/config"
	"todopad/internal/hooks"
	"todopad/internal/store"
	"todopad/internal/task"
)

type model struct {
	cfg   config.Config
	st    *store.Store
	ctrl  *app.Controller
	hooks *hooks.HookEnv

	input textinput.Model
	spin  spinner.Model
	help  help.Model
	keys  keymap

	width  int
	height int
	cursor int

	loading bool
	loadErr string
	adding  bool

	th   theme
	dark bool

	statusMsg string
	notice    string
	noticeGen int

	showHelp bool
}

type keymap struct {
	up     key.Binding
	down   key.Binding
	add    key.Binding
	toggle key.Binding
	del    key.Binding
	undo   key.Binding
	theme  key.Binding
	help   key.Binding
	quit   key.Binding
}

func defaultKeymap() keymap {
	return keymap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		add:    key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "toggle")),
		del:    key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "delete")),
		undo:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.add, k.toggle, k.del, k.undo, k.theme, k.help, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.add, k.toggle},
		{k.del, k.undo, k.theme, k.quit},
	}
}

func New(cfg config.Config, st *store.Store) model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	ti := textinput.New()
	ti.Placeholder = "what needs doing?"
	ti.CharLimit = task.MaxNameLen
	dark := cfg.Theme != "light"
	return model{
		cfg:     cfg,
		st:      st,
		input:   ti,
		spin:    sp,
		help:    help.New(),
		keys:    defaultKeymap(),
		loading: true,
		dark:    dark,
		th:      themeByName(cfg.Theme),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(loadTasksCmd(m.st, m.cfg.Debug), loadHooksCmd(m.cfg), spinner.Tick)
}

type tasksLoadedMsg []task.Task

type errMsg struct{ error }

func (e errMsg) Error() string { return e.error.Error() }

type hooksLoadedMsg struct{ env *hooks.HookEnv }

type undoExpiredMsg int

func loadTasksCmd(st *store.Store, debug bool) tea.Cmd {
	return func() tea.Msg {
		list, err := st.Load()
		if err != nil {
			return errMsg{err}
		}
		if debug {
			log.Printf("[tui] loaded %d tasks from %s", len(list), st.Path())
			for _, t := range list {
				log.Printf("task %s: %s", t.ID, t.Name)
			}
		}
		return tasksLoadedMsg(list)
	}
}

func loadHooksCmd(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		return hooksLoadedMsg{env: hooks.LoadDir(cfg.HooksDir)}
	}
}

func expireUndoCmd(window time.Duration, gen int) tea.Cmd {
	return tea.Tick(window, func(time.Time) tea.Msg { return undoExpiredMsg(gen) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(20, m.width-4)
		return m, nil
	case tasksLoadedMsg:
		m.ctrl = app.NewController(m.st, []task.Task(msg))
		m.loading = false
		m.cursor = 0
		if m.ctrl.Len() == 0 {
			m.statusMsg = "No tasks yet. Press a to add one."
		} else {
			m.statusMsg = fmt.Sprintf("%d tasks", m.ctrl.Len())
		}
		return m, nil
	case errMsg:
		m.loading = false
		m.loadErr = msg.Error()
		log.Printf("[tui] load failed: %v", msg.error)
		return m, nil
	case hooksLoadedMsg:
		m.hooks = msg.env
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case undoExpiredMsg:
		gen := int(msg)
		if m.ctrl != nil {
			m.ctrl.ExpireUndo(gen)
		}
		if gen == m.noticeGen {
			m.notice = ""
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.loadErr != "" || m.loading {
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.adding {
		switch msg.Type {
		case tea.KeyEnter:
			if t, ok := m.ctrl.Add(m.input.Value()); ok {
				m.input.SetValue("")
				m.cursor = m.ctrl.Len() - 1
				m.statusMsg = "added: " + t.Name
			}
			return m, nil
		case tea.KeyEsc:
			m.adding = false
			m.input.Blur()
			return m, nil
		case tea.KeyCtrlC:
			m.ctrl.Flush()
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		m.ctrl.Flush()
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.down):
		if m.cursor < m.ctrl.Len()-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.add):
		m.adding = true
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.toggle):
		if t, ok := m.taskAtCursor(); ok {
			m.ctrl.Toggle(t.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.del):
		t, ok := m.taskAtCursor()
		if !ok {
			return m, nil
		}
		removed, gen, ok := m.ctrl.Delete(t.ID)
		if !ok {
			return m, nil
		}
		m.clampCursor()
		m.notice = fmt.Sprintf("Deleted %q. Undo? (u)", removed.Name)
		m.noticeGen = gen
		return m, expireUndoCmd(m.ctrl.Window(), gen)
	case key.Matches(msg, m.keys.undo):
		if t, ok := m.ctrl.Undo(); ok {
			m.notice = ""
			m.cursor = m.ctrl.Len() - 1
			m.statusMsg = "restored: " + t.Name
		} else {
			m.statusMsg = "nothing to undo"
		}
		return m, nil
	case key.Matches(msg, m.keys.theme):
		m.dark = !m.dark
		if m.dark {
			m.th = darkTheme()
		} else {
			m.th = lightTheme()
		}
		return m, nil
	case key.Matches(msg, m.keys.help):
		m.showHelp = true
		return m, nil
	}
	return m, nil
}

func (m *model) taskAtCursor() (task.Task, bool) {
	ts := m.ctrl.Tasks()
	if m.cursor < 0 || m.cursor >= len(ts) {
		return task.Task{}, false
	}
	return ts[m.cursor], true
}

func (m *model) clampCursor() {
	if n := m.ctrl.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) View() string {
	if m.showHelp {
		return renderHelp(max(40, m.width-2))
	}
	if m.loading {
		return fmt.Sprintf("%s Loading tasks...", m.spin.View())
	}
	if m.loadErr != "" {
		// plain-text failure notice in place of the list
		return "Could not load tasks: " + m.loadErr + "\n\npress q to quit\n"
	}

	b := &strings.Builder{}
	b.WriteString(m.th.title.Render(fmt.Sprintf("todopad — %d tasks  [%s]", m.ctrl.Len(), m.th.name)))
	b.WriteString("\n\n")
	for i, t := range m.ctrl.Tasks() {
		b.WriteString(m.renderRow(i, t))
		b.WriteString("\n")
	}
	if m.adding {
		b.WriteString("\n+ " + m.input.View() + "\n")
	}
	if m.notice != "" {
		b.WriteString("\n" + m.th.notice.Render(m.notice) + "\n")
	}
	b.WriteString(footer(m.th.status.Render(m.statusMsg)))
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) renderRow(i int, t task.Task) string {
	box := "[ ]"
	if t.Complete {
		box = "[x]"
	}
	name := t.Name
	if s, ok := m.hooks.DecorateTaskRow(t); ok {
		name = sanitizeInline(s)
	}
	style := m.th.row
	if t.Complete {
		style = m.th.done
	}
	line := box + " " + style.Render(name)
	if i == m.cursor {
		return m.th.cursor.Render("> ") + line
	}
	return "  " + line
}

func footer(msg string) string {
	if msg == "" {
		return "\n"
	}
	return "\n" + msg + "\n"
}

// sanitizeInline keeps hook output on a single line.
func sanitizeInline(s string) string {
	b := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' {
			r = ' '
		}
		b = append(b, r)
	}
	return strings.TrimSpace(string(b))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
