// Package tui renders the session in a terminal. It holds no scan logic:
// every command goes through the session and every view reads from it.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dirscope/internal/deleter"
	"dirscope/internal/model"
	"dirscope/internal/session"
	"dirscope/pkg/utils"
)

type status int

const (
	statusScanning status = iota
	statusReady
	statusConfirm
	statusDeleting
)

// Options configures the TUI around a session.
type Options struct {
	Root            string        // scanned on startup unless the session already has a root
	RefreshInterval time.Duration // auto-refresh period when enabled
	Concurrency     int           // workers for batch deletion
	DryRun          bool
}

type uiModel struct {
	sess *session.Session
	opts Options

	st      status
	sp      spinner.Model
	search  textinput.Model
	entries []model.FileEntry
	cursor  int
	scroll  int

	selected map[string]struct{} // paths marked for batch deletion

	autoRefresh bool
	searching   bool
	showHelp    bool
	showStats   bool
	lastErr     error

	// confirm/delete state
	pending      []model.FileEntry
	delCh        chan tea.Msg
	delCancel    func()
	delTotal     int
	delCompleted int
	delLastPath  string
	statusLine   string

	termW int
	termH int
}

func newModel(sess *session.Session, opts Options) uiModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.CharLimit = 128
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 30 * time.Second
	}
	return uiModel{
		sess:     sess,
		opts:     opts,
		st:       statusScanning,
		sp:       sp,
		search:   ti,
		selected: make(map[string]struct{}),
	}
}

// Run drives the TUI until the user quits. The initial scan (including
// Options.Root selection) happens on a worker so the first frame can show
// a spinner instead of blocking on a large tree.
func Run(sess *session.Session, opts Options) error {
	m := newModel(sess, opts)
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

// messages
type scanDoneMsg struct{}
type refreshTickMsg time.Time
type delProgressMsg deleter.Progress
type delDoneMsg struct{ summary deleter.Summary }

func (m uiModel) scanCmd(bypassCache bool) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		if bypassCache {
			sess.Refresh()
		} else {
			sess.Rescan()
		}
		return scanDoneMsg{}
	}
}

func (m uiModel) refreshTick() tea.Cmd {
	return tea.Tick(m.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func (m uiModel) Init() tea.Cmd {
	sess, root := m.sess, m.opts.Root
	boot := func() tea.Msg {
		if !sess.Ready() {
			sess.SetRoot(root)
		} else {
			sess.Rescan()
		}
		return scanDoneMsg{}
	}
	return tea.Batch(m.sp.Tick, boot)
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		if m.st == statusScanning || m.st == statusDeleting {
			return m, cmd
		}
		return m, nil

	case scanDoneMsg:
		m.entries = m.sess.Entries()
		m.clampCursor()
		m.st = statusReady
		return m, nil

	case refreshTickMsg:
		if !m.autoRefresh {
			return m, nil
		}
		cmds := []tea.Cmd{m.refreshTick()}
		if m.st == statusReady {
			m.st = statusScanning
			cmds = append(cmds, m.sp.Tick, m.scanCmd(true))
		}
		return m, tea.Batch(cmds...)

	case delProgressMsg:
		m.delCompleted = msg.Completed
		m.delLastPath = msg.Path
		return m, m.waitDeleteMsg()

	case delDoneMsg:
		m.entries = m.sess.Entries()
		for _, e := range msg.summary.Successes {
			delete(m.selected, e.Path)
		}
		m.clampCursor()
		mode := ""
		if m.opts.DryRun {
			mode = " (dry-run)"
		}
		m.statusLine = fmt.Sprintf("freed %s%s, %d failed", utils.HumanizeBytes(msg.summary.Freed), mode, len(msg.summary.Failures))
		if len(msg.summary.Failures) > 0 {
			m.lastErr = msg.summary.Failures[0].Err
		}
		m.pending = nil
		m.delCh = nil
		m.st = statusReady
		return m, nil
	}
	return m, nil
}

func (m uiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// search input swallows everything while focused
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.sess.SetQuery("")
			m.entries = m.sess.Entries()
			m.clampCursor()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.sess.SetQuery(m.search.Value())
		m.entries = m.sess.Entries()
		m.clampCursor()
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if m.st == statusDeleting && m.delCancel != nil {
			m.delCancel()
			return m, m.waitDeleteMsg()
		}
		return m, tea.Quit
	case "esc":
		if m.st == statusConfirm {
			m.pending = nil
			m.st = statusReady
			return m, nil
		}
		if m.st == statusDeleting && m.delCancel != nil {
			m.delCancel()
			return m, m.waitDeleteMsg()
		}
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.st == statusConfirm {
		switch msg.String() {
		case "y":
			return m.startDeletion()
		case "n":
			m.pending = nil
			m.st = statusReady
		}
		return m, nil
	}
	if m.st != statusReady {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.adjustScroll()
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.adjustScroll()
		}
	case "enter", "right", "l":
		if e, ok := m.cursorEntry(); ok && e.IsDir {
			// NavigateTo scans synchronously, so it runs off the loop
			sess, path := m.sess, e.Path
			m.cursor, m.scroll = 0, 0
			return m.startScanWith(func() tea.Msg {
				sess.NavigateTo(path)
				return scanDoneMsg{}
			})
		}
	case "left", "backspace", "u":
		if m.sess.Current() == m.sess.Root() {
			return m, nil
		}
		sess := m.sess
		m.cursor, m.scroll = 0, 0
		return m.startScanWith(func() tea.Msg {
			sess.GoUp()
			return scanDoneMsg{}
		})
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case " ":
		if e, ok := m.cursorEntry(); ok {
			if _, sel := m.selected[e.Path]; sel {
				delete(m.selected, e.Path)
			} else {
				m.selected[e.Path] = struct{}{}
			}
		}
	case "s":
		m.sess.SetSortBySize(!m.sess.Filter().SortBySize)
		m.entries = m.sess.Entries()
	case "a":
		m.sess.SetShowAll(!m.sess.Filter().ShowAll)
		return m.startScan(false)
	case ".":
		m.sess.SetShowHidden(!m.sess.Filter().ShowHidden)
		return m.startScan(false)
	case "r":
		return m.startScan(true)
	case "t":
		m.autoRefresh = !m.autoRefresh
		if m.autoRefresh {
			return m, m.refreshTick()
		}
	case "i":
		m.showStats = !m.showStats
	case "d":
		targets := m.deleteTargets()
		if len(targets) == 0 {
			return m, nil
		}
		m.pending = targets
		m.st = statusConfirm
	}
	return m, nil
}

func (m uiModel) startScan(bypassCache bool) (tea.Model, tea.Cmd) {
	return m.startScanWith(m.scanCmd(bypassCache))
}

func (m uiModel) startScanWith(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.st = statusScanning
	m.statusLine = ""
	m.lastErr = nil
	return m, tea.Batch(m.sp.Tick, cmd)
}

func (m uiModel) startDeletion() (tea.Model, tea.Cmd) {
	m.st = statusDeleting
	m.sp = spinner.New()
	m.sp.Spinner = spinner.Dot
	m.delCompleted = 0
	m.delTotal = len(m.pending)
	targets := m.pending

	ch := make(chan tea.Msg)
	m.delCh = ch
	ctx, cancel := context.WithCancel(context.Background())
	m.delCancel = cancel
	sess := m.sess
	opts := m.opts

	go func() {
		pch := make(chan deleter.Progress, 16)
		done := make(chan deleter.Summary, 1)
		go func() {
			done <- sess.DeleteMany(ctx, targets, opts.Concurrency, pch, opts.DryRun)
		}()
		for {
			select {
			case p := <-pch:
				ch <- delProgressMsg(p)
			case sum := <-done:
				ch <- delDoneMsg{summary: sum}
				close(ch)
				return
			}
		}
	}()

	return m, tea.Batch(m.sp.Tick, m.waitDeleteMsg())
}

func (m uiModel) waitDeleteMsg() tea.Cmd {
	ch := m.delCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// deleteTargets returns the selection, or the cursor entry when nothing is
// selected.
func (m *uiModel) deleteTargets() []model.FileEntry {
	if len(m.selected) > 0 {
		var out []model.FileEntry
		for _, e := range m.entries {
			if _, ok := m.selected[e.Path]; ok {
				out = append(out, e)
			}
		}
		return out
	}
	if e, ok := m.cursorEntry(); ok {
		return []model.FileEntry{e}
	}
	return nil
}

func (m *uiModel) cursorEntry() (model.FileEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return model.FileEntry{}, false
	}
	return m.entries[m.cursor], true
}

func (m *uiModel) clampCursor() {
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustScroll()
}

func (m *uiModel) adjustScroll() {
	visible := m.listHeight()
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *uiModel) listHeight() int {
	headerLines := strings.Count(m.headerText(), "\n") + 1
	h := m.termH - headerLines - 1
	if h < 3 {
		h = 3
	}
	return h
}

func (m uiModel) View() string {
	switch m.st {
	case statusConfirm:
		var freed int64
		for _, e := range m.pending {
			freed += e.Size
		}
		names := make([]string, 0, len(m.pending))
		for _, e := range m.pending {
			names = append(names, e.Name)
		}
		label := names[0]
		if len(names) > 1 {
			label = fmt.Sprintf("%d entries", len(names))
		}
		return fmt.Sprintf("Delete %s (frees ~%s)? (y/N)\n", label, utils.HumanizeBytes(freed))
	case statusDeleting:
		mode := ""
		if m.opts.DryRun {
			mode = " [dry-run]"
		}
		return fmt.Sprintf("Deleting%s... %s\nProgress: %d/%d\nLast: %s\nPress q to cancel.\n",
			mode, m.sp.View(), m.delCompleted, m.delTotal, m.delLastPath)
	default:
		out := m.headerText() + m.renderList()
		if m.showStats {
			out += "\n" + m.statsText()
		}
		if m.showHelp {
			out += "\n" + helpText()
		}
		return out
	}
}

func (m *uiModel) headerText() string {
	var b strings.Builder
	b.WriteString(m.breadcrumbLine())
	b.WriteString("\n")

	if m.st == statusScanning {
		fmt.Fprintf(&b, "Scanning %s %s\n", m.sp.View(), m.sess.Current())
	} else {
		f := m.sess.Filter()
		flags := make([]string, 0, 4)
		if f.ShowAll {
			flags = append(flags, "all")
		}
		if f.ShowHidden {
			flags = append(flags, "hidden")
		}
		if m.autoRefresh {
			flags = append(flags, "auto")
		}
		if m.sess.FromCache() {
			flags = append(flags, "cached")
		}
		flagStr := ""
		if len(flags) > 0 {
			flagStr = " [" + strings.Join(flags, ",") + "]"
		}
		skipped := ""
		if n := m.sess.Skipped(); n > 0 {
			skipped = fmt.Sprintf("  Unreadable: %d", n)
		}
		fmt.Fprintf(&b, "Total: %s  Items: %d%s%s", utils.HumanizeBytes(m.sess.Total()), len(m.entries), skipped, flagStr)
		if m.searching || m.search.Value() != "" {
			fmt.Fprintf(&b, "  Search: %s", m.search.View())
		}
		if m.statusLine != "" {
			fmt.Fprintf(&b, "  %s", m.statusLine)
		}
		if m.lastErr != nil {
			fmt.Fprintf(&b, "\n%s", errStyle.Render(m.lastErr.Error()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m *uiModel) breadcrumbLine() string {
	crumbs := m.sess.Breadcrumbs()
	if len(crumbs) == 0 {
		return ""
	}
	parts := make([]string, len(crumbs))
	parts[0] = crumbs[0]
	for i := 1; i < len(crumbs); i++ {
		parts[i] = filepath.Base(crumbs[i])
	}
	return crumbStyle.Render(strings.Join(parts, " > "))
}

func (m *uiModel) renderList() string {
	if len(m.entries) == 0 {
		if m.st == statusScanning {
			return ""
		}
		return "Nothing to show. Press a to include small entries, . for hidden ones.\n"
	}

	var b strings.Builder
	visible := m.listHeight()
	end := m.scroll + visible
	if end > len(m.entries) {
		end = len(m.entries)
	}

	for i := m.scroll; i < end; i++ {
		e := m.entries[i]

		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render(">") + " "
		}

		mark := markStyle.Render("[ ]")
		if _, ok := m.selected[e.Path]; ok {
			mark = markSelectedStyle.Render("[x]")
		}

		size := sizeColorStyle(e.Size).Render(fmt.Sprintf("%9s", utils.HumanizeBytesCompact(e.Size)))

		name := e.Name
		if e.IsDir {
			name = dirStyle.Render(name + "/")
		}

		b.WriteString(prefix + mark + " " + size + " " + name + "\n")
	}
	return b.String()
}

func (m *uiModel) statsText() string {
	st := m.sess.Stats()
	lines := []string{
		"Directory statistics:",
		fmt.Sprintf("  Total items: %d", st.Items),
		fmt.Sprintf("  Files: %d", st.Files),
		fmt.Sprintf("  Directories: %d", st.Dirs),
		fmt.Sprintf("  Total size: %s", utils.HumanizeBytes(st.Total)),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func helpText() string {
	lines := []string{
		"Help (press ? to close):",
		"  ↑/k, ↓/j       Move cursor",
		"  enter/l        Open directory",
		"  backspace/u    Go up (stops at the root)",
		"  space          Mark for deletion",
		"  d              Delete marked (or cursor) entry",
		"  /              Search by name",
		"  s              Toggle size/name sort",
		"  a              Toggle small entries",
		"  .              Toggle hidden entries",
		"  r              Refresh (ignores cache)",
		"  t              Toggle 30s auto-refresh",
		"  i              Directory statistics",
		"  q/esc          Quit",
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
