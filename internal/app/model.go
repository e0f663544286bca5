// Package app wires the stores, vault, selection, editor session, and
// assistant into the bubbletea event loop.
package app

import (
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/inkwell/internal/ai"
	"github.com/marcus/inkwell/internal/capture"
	"github.com/marcus/inkwell/internal/config"
	"github.com/marcus/inkwell/internal/editor"
	"github.com/marcus/inkwell/internal/note"
	"github.com/marcus/inkwell/internal/selection"
	"github.com/marcus/inkwell/internal/store"
	"github.com/marcus/inkwell/internal/ui"
	"github.com/marcus/inkwell/internal/vault"
)

// Screen identifies the top-level view.
type Screen int

const (
	ScreenList Screen = iota
	ScreenEditor
)

// ModalKind identifies the active modal. Exactly one modal can be up
// at a time; every modal key handler runs before the screen handlers.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalConfirm
	ModalPassword
	ModalNewFolder
	ModalPicker
	ModalPrompt
	ModalNotice
)

// confirmAction says what a confirmed ModalConfirm dialog executes.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDeleteNote
	confirmBulkDelete
	confirmDeleteFolder
)

// promptAction says what a ModalPrompt submission does.
type promptAction int

const (
	promptForAI promptAction = iota
	promptForAttach
)

// pickerAction says what a ModalPicker selection applies to.
type pickerAction int

const (
	pickNone pickerAction = iota
	pickMoveTarget
	pickCategory
	pickLanguage
	pickPaperColor
	pickPaperStyle
	pickAssistant
	pickView
)

// Model is the root bubbletea model.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	store   *store.Store
	filter  *note.Filter
	vault   *vault.Vault
	sel     selection.Controller
	orch    *ai.Orchestrator
	watcher *store.Watcher

	transcriber capture.Transcriber
	locator     capture.Locator

	// List screen state.
	view        note.View
	query       string
	searching   bool
	searchInput textinput.Model
	cursor      int
	gridLayout  bool
	visible     []note.Note

	// Editor screen state.
	screen       Screen
	session      *editor.Session
	titleInput   textinput.Model
	body         textarea.Model
	editingTitle bool
	preview      bool
	attachment   *ai.Attachment

	// Modal state.
	modal         ModalKind
	confirm       ui.ConfirmDialog
	confirmWhat   confirmAction
	confirmTarget string // note or folder id the confirm acts on
	passwordInput textinput.Model
	folderInput   textinput.Model
	promptInput   textinput.Model
	promptFor     promptAction
	picker        ui.Picker
	pickWhat      pickerAction
	pendingColor  string // paper color held between the two paper pickers
	notice        string

	// Speech capture state.
	speechActive bool
	speechCh     <-chan string

	width  int
	height int
	ready  bool

	// Toast state.
	statusMsg     string
	statusIsError bool
	statusExpiry  time.Time
}

// Options carries the wired dependencies into New.
type Options struct {
	Config      *config.Config
	Store       *store.Store
	Vault       *vault.Vault
	Service     ai.Service
	Watcher     *store.Watcher
	Transcriber capture.Transcriber
	Locator     capture.Locator
	Logger      *slog.Logger
}

// New builds the root model.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Transcriber == nil {
		opts.Transcriber = capture.Unsupported{}
	}
	if opts.Locator == nil {
		opts.Locator = capture.Unsupported{}
	}

	search := textinput.New()
	search.Placeholder = "search all notes"
	search.CharLimit = 128

	title := textinput.New()
	title.Placeholder = "Untitled"
	title.CharLimit = 200

	password := textinput.New()
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 64

	folder := textinput.New()
	folder.Placeholder = "folder name"
	folder.CharLimit = 64

	prompt := textinput.New()
	prompt.Placeholder = "ask the assistant"
	prompt.CharLimit = 500

	body := textarea.New()
	body.Placeholder = "Start writing..."
	body.CharLimit = 0

	m := Model{
		cfg:           opts.Config,
		logger:        opts.Logger,
		store:         opts.Store,
		filter:        note.NewFilter(),
		vault:         opts.Vault,
		orch:          ai.New(opts.Service, opts.Config.Gemini.Timeout, opts.Logger),
		watcher:       opts.Watcher,
		transcriber:   opts.Transcriber,
		locator:       opts.Locator,
		view:          note.AllView(),
		searchInput:   search,
		titleInput:    title,
		passwordInput: password,
		folderInput:   folder,
		promptInput:   prompt,
		body:          body,
		gridLayout:    opts.Config.UI.ListLayout == "grid",
	}
	// A saved preference wins over the config default.
	if p := opts.Store.UIPrefs(); p.Layout != "" {
		m.gridLayout = p.Layout == "grid"
	}
	m.refresh()
	return m
}

// Init starts the background listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		cmds = append(cmds, watchCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// refresh recomputes the visible note list and clamps the cursor.
func (m *Model) refresh() {
	m.visible = m.filter.Visible(m.store.Notes(), m.view, m.query, m.vault.Unlocked())
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// current returns the note under the list cursor.
func (m *Model) current() (note.Note, bool) {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return note.Note{}, false
	}
	return m.visible[m.cursor], true
}

// setView switches the active view and drops any search.
func (m *Model) setView(v note.View) {
	m.view = v
	m.query = ""
	m.searching = false
	m.searchInput.SetValue("")
	m.cursor = 0
	m.refresh()
}

func (m *Model) showToast(text string, isError bool) {
	m.statusMsg = text
	m.statusIsError = isError
	m.statusExpiry = time.Now().Add(3 * time.Second)
}

func (m *Model) clearExpiredToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
	}
}

// openSession moves to the editor screen over the given session.
func (m *Model) openSession(s *editor.Session) {
	m.session = s
	m.screen = ScreenEditor
	m.preview = false
	m.editingTitle = false
	m.attachment = nil
	m.titleInput.SetValue(s.Title())
	m.titleInput.Blur()
	m.body.SetValue(s.Content())
	m.body.Focus()
}

// closeSession commits, tears the session down, and returns to the
// list. A pending assistant request is abandoned.
func (m *Model) closeSession() {
	if m.session == nil {
		return
	}
	if _, _, err := m.session.Done(); err != nil {
		m.showToast("save failed: "+err.Error(), true)
		m.logger.Error("commit on close failed", "error", err)
	}
	m.orch.Reset()
	m.session = nil
	m.screen = ScreenList
	m.body.Blur()
	m.refresh()
}

// syncSession pushes widget state into the editor session, caret
// included, so programmatic insertions land where the user is typing.
func (m *Model) syncSession() {
	if m.session == nil {
		return
	}
	m.session.SetContent(m.body.Value())
	m.session.SetTitle(m.titleInput.Value())
	m.session.SetCaret(m.bodyCaret())
}

// pushSession pulls session state back into the widgets after a
// programmatic document change.
func (m *Model) pushSession() {
	if m.session == nil {
		return
	}
	m.titleInput.SetValue(m.session.Title())
	m.body.SetValue(m.session.Content())
	m.setBodyCaret(m.session.Caret())
}

// bodyCaret is the textarea cursor as a rune offset into the buffer.
func (m *Model) bodyCaret() int {
	row := m.body.Line()
	li := m.body.LineInfo()
	col := li.StartColumn + li.ColumnOffset
	lines := strings.Split(m.body.Value(), "\n")
	off := 0
	for i := 0; i < row && i < len(lines); i++ {
		off += utf8.RuneCountInString(lines[i]) + 1
	}
	return off + col
}

// setBodyCaret moves the textarea cursor to a rune offset. SetValue
// leaves the cursor on the last row, so walk up to the target row
// first.
func (m *Model) setBodyCaret(offset int) {
	lines := strings.Split(m.body.Value(), "\n")
	row, col := 0, offset
	for row < len(lines)-1 && col > utf8.RuneCountInString(lines[row]) {
		col -= utf8.RuneCountInString(lines[row]) + 1
		row++
	}
	for m.body.Line() > row {
		m.body.CursorUp()
	}
	m.body.SetCursor(col)
}
