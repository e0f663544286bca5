package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/inkwell/internal/ai"
	"github.com/marcus/inkwell/internal/capture"
	"github.com/marcus/inkwell/internal/editor"
	"github.com/marcus/inkwell/internal/msg"
	"github.com/marcus/inkwell/internal/note"
	"github.com/marcus/inkwell/internal/selection"
	"github.com/marcus/inkwell/internal/store"
	"github.com/marcus/inkwell/internal/ui"
	"github.com/marcus/inkwell/internal/vault"
)

// Update is the single event dispatcher. Modal keys win over screen
// keys; everything else is routed by message type.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch ev := message.(type) {
	case tea.WindowSizeMsg:
		m.width = ev.Width
		m.height = ev.Height
		m.ready = true
		m.searchInput.Width = min(48, ev.Width-8)
		m.body.SetWidth(ev.Width - 4)
		m.body.SetHeight(ev.Height - 7)
		m.titleInput.Width = ev.Width - 10
		return m, nil

	case msg.ToastMsg:
		// Toasts from async command paths arrive here; synchronous key
		// handlers set toast state directly.
		m.showToast(ev.Message, ev.IsError)
		if ev.Duration > 0 {
			m.statusExpiry = time.Now().Add(ev.Duration)
		}
		return m, toastTick()

	case toastTickMsg:
		m.clearExpiredToast()
		if m.statusMsg != "" {
			return m, toastTick()
		}
		return m, nil

	case autoSaveTickMsg:
		return m.handleAutoSave(ev)

	case aiResultMsg:
		return m.handleAIResult(ev)

	case reloadMsg:
		if err := m.store.Reload(); err != nil {
			m.logger.Error("reload after external change failed", "key", ev.Key, "error", err)
			return m, tea.Batch(watchCmd(m.watcher), msg.ShowError("could not reload "+ev.Key))
		}
		m.refresh()
		return m, watchCmd(m.watcher)

	case locationMsg:
		return m.handleLocation(ev)

	case speechMsg:
		return m.handleSpeech(ev)

	case tea.KeyMsg:
		if m.modal != ModalNone {
			return m.handleModalKey(ev)
		}
		if m.screen == ScreenEditor {
			return m.handleEditorKey(ev)
		}
		return m.handleListKey(ev)
	}
	return m, nil
}

func (m Model) handleAutoSave(ev autoSaveTickMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	n, saved, err := m.session.CommitDue(ev.Gen)
	if err != nil {
		m.showToast("save failed: "+err.Error(), true)
		return m, toastTick()
	}
	if saved {
		m.logger.Debug("autosaved", "note", n.ID)
		m.refresh()
	}
	return m, nil
}

func (m Model) handleAIResult(ev aiResultMsg) (tea.Model, tea.Cmd) {
	out := m.orch.Apply(ev.Res, m.session)
	if out.IsError {
		return m, msg.ShowError(out.Notice)
	}
	if !out.Applied && out.Notice == "" {
		// Stale epoch or closed session.
		return m, nil
	}
	if out.Applied {
		m.pushSession()
		applied := msg.ShowToast(ev.Res.Op.String() + " applied")
		if m.session != nil {
			return m, tea.Batch(applied, scheduleAutoSave(m.session.Generation()))
		}
		return m, applied
	}
	// Result that cannot be written into the document, e.g. a summary
	// of a code note. Show it without touching the buffer.
	m.notice = out.Notice
	m.modal = ModalNotice
	return m, nil
}

func (m Model) handleLocation(ev locationMsg) (tea.Model, tea.Cmd) {
	if ev.Err != nil {
		if errors.Is(ev.Err, capture.ErrUnsupported) {
			return m, msg.ShowError("location capture is not available on this device")
		}
		return m, msg.ShowError("location lookup failed: " + ev.Err.Error())
	}
	if m.session == nil {
		return m, nil
	}
	m.insertText(capture.MapsLink(ev.Pos) + "\n")
	return m, scheduleAutoSave(m.session.Generation())
}

func (m Model) handleSpeech(ev speechMsg) (tea.Model, tea.Cmd) {
	if !ev.OK {
		m.speechActive = false
		m.speechCh = nil
		return m, nil
	}
	if m.session == nil || !m.speechActive {
		return m, listenSpeech(m.speechCh)
	}
	m.insertText(ev.Text + " ")
	return m, tea.Batch(listenSpeech(m.speechCh), scheduleAutoSave(m.session.Generation()))
}

// insertText splices text at the caret through the session's
// insertion primitive, then repositions the widget cursor after it.
func (m *Model) insertText(text string) {
	m.syncSession()
	m.session.InsertAtCursor(text)
	m.pushSession()
}

// --- list screen ---

func (m Model) handleListKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(k)
	}

	switch k.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "esc":
		if m.sel.Active() {
			m.sel.Toggle()
		} else if m.query != "" {
			m.query = ""
			m.searchInput.SetValue("")
			m.refresh()
		} else if m.view.Kind != note.ViewAll {
			m.setView(note.AllView())
		}
		return m, nil

	case "up", "k":
		m.moveCursor(-m.cursorStep())
		return m, nil
	case "down", "j":
		m.moveCursor(m.cursorStep())
		return m, nil
	case "left", "h":
		if m.gridLayout {
			m.moveCursor(-1)
		}
		return m, nil
	case "right", "l":
		if m.gridLayout {
			m.moveCursor(1)
		}
		return m, nil

	case "enter":
		n, ok := m.current()
		if !ok {
			return m, nil
		}
		if m.sel.Active() {
			m.sel.ToggleMember(n.ID)
			return m, nil
		}
		m.openSession(editor.Open(m.store, m.logger, n))
		return m, textinput.Blink

	case " ":
		if n, ok := m.current(); ok {
			m.sel.ToggleMember(n.ID)
		}
		return m, nil

	case "v":
		m.sel.Toggle()
		return m, nil

	case "n":
		m.openSession(editor.NewDraft(m.store, m.logger, m.view))
		return m, textinput.Blink

	case "d":
		return m.confirmDelete()

	case "m":
		if !m.sel.Active() || m.sel.Count() == 0 {
			m.showToast("select notes to move first", true)
			return m, toastTick()
		}
		m.openPicker(pickMoveTarget, "Move to", m.moveTargets())
		return m, nil

	case "f":
		m.modal = ModalNewFolder
		m.folderInput.SetValue("")
		m.folderInput.Focus()
		return m, textinput.Blink

	case "F":
		if m.view.Kind != note.ViewFolder {
			m.showToast("open a folder view to delete it", true)
			return m, toastTick()
		}
		f, ok := m.store.Folder(m.view.FolderID)
		if !ok {
			return m, nil
		}
		m.confirmWhat = confirmDeleteFolder
		m.confirmTarget = f.ID
		m.confirm = ui.NewConfirmDialog("Delete folder",
			fmt.Sprintf("Delete %q? Its notes are kept and moved to All Notes.", f.Name), true)
		m.modal = ModalConfirm
		return m, nil

	case "tab":
		m.openPicker(pickView, "Go to", m.viewTargets())
		return m, nil

	case "s":
		return m.requestVault()

	case "x":
		if m.vault.Unlocked() {
			m.vault.Lock()
			m.setView(note.AllView())
			m.showToast("vault locked", false)
			return m, toastTick()
		}
		return m, nil

	case "g":
		m.gridLayout = !m.gridLayout
		layout := "list"
		if m.gridLayout {
			layout = "grid"
		}
		if err := m.store.SaveUIPrefs(store.UIPrefs{Layout: layout}); err != nil {
			m.logger.Warn("could not persist layout preference", "error", err)
		}
		return m, nil

	case "*":
		n, ok := m.current()
		if !ok {
			return m, nil
		}
		if _, err := m.store.UpdateNote(n.ID, func(u *note.Note) {
			u.Favorite = !u.Favorite
		}); err != nil {
			m.showToast(err.Error(), true)
			return m, toastTick()
		}
		m.refresh()
		return m, nil

	case "y":
		n, ok := m.current()
		if !ok {
			return m, nil
		}
		if err := clipboard.WriteAll(n.PlainText()); err != nil {
			m.showToast("copy failed: "+err.Error(), true)
		} else {
			m.showToast("note copied", false)
		}
		return m, toastTick()
	}
	return m, nil
}

func (m Model) handleSearchKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.searching = false
		m.query = ""
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.refresh()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(k)
	m.query = m.searchInput.Value()
	m.cursor = 0
	m.refresh()
	return m, cmd
}

// cursorStep is 1 in list layout and one row of cards in grid layout.
func (m *Model) cursorStep() int {
	if !m.gridLayout {
		return 1
	}
	return max(1, m.gridColumns())
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.visible) {
		return
	}
	m.cursor = next
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	if m.sel.Active() {
		count, err := m.sel.BulkDelete(m.store, false)
		if errors.Is(err, selection.ErrConfirmationRequired) {
			m.confirmWhat = confirmBulkDelete
			m.confirm = ui.NewConfirmDialog("Delete notes",
				fmt.Sprintf("Delete %d selected notes?", m.sel.Count()), true)
			m.modal = ModalConfirm
			return m, nil
		}
		if err != nil {
			m.showToast(err.Error(), true)
			return m, toastTick()
		}
		_ = count
		return m, nil
	}
	n, ok := m.current()
	if !ok {
		return m, nil
	}
	m.confirmWhat = confirmDeleteNote
	m.confirmTarget = n.ID
	title := n.Title
	if title == "" {
		title = "Untitled"
	}
	m.confirm = ui.NewConfirmDialog("Delete note", fmt.Sprintf("Delete %q?", title), true)
	m.modal = ModalConfirm
	return m, nil
}

// requestVault opens the secret view directly when already unlocked,
// otherwise prompts for the password.
func (m Model) requestVault() (tea.Model, tea.Cmd) {
	if m.vault.Unlocked() {
		m.setView(note.VaultView())
		return m, nil
	}
	mode := m.vault.RequestAccess()
	if mode == vault.ModeSet {
		m.passwordInput.Placeholder = "choose a vault password"
	} else {
		m.passwordInput.Placeholder = "vault password"
	}
	m.passwordInput.SetValue("")
	m.passwordInput.Focus()
	m.modal = ModalPassword
	return m, textinput.Blink
}

// --- editor screen ---

func (m Model) handleEditorKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		if m.editingTitle {
			m.editingTitle = false
			m.titleInput.Blur()
			m.body.Focus()
			return m, nil
		}
		if m.preview {
			m.preview = false
			return m, nil
		}
		if m.speechActive {
			m.transcriber.Stop()
			m.speechActive = false
		}
		m.closeSession()
		return m, nil

	case "ctrl+s":
		m.syncSession()
		_, saved, err := m.session.CommitDue(m.session.Generation())
		if err != nil {
			m.showToast("save failed: "+err.Error(), true)
		} else if saved {
			m.showToast("saved", false)
			m.refresh()
		}
		return m, toastTick()

	case "ctrl+t":
		m.editingTitle = !m.editingTitle
		if m.editingTitle {
			m.body.Blur()
			m.titleInput.Focus()
		} else {
			m.titleInput.Blur()
			m.body.Focus()
		}
		return m, textinput.Blink

	case "ctrl+p":
		m.syncSession()
		m.preview = !m.preview
		return m, nil

	case "ctrl+e":
		m.openPicker(pickLanguage, "Note format", languageTargets())
		return m, nil

	case "ctrl+k":
		m.openPicker(pickCategory, "Category", categoryTargets())
		return m, nil

	case "ctrl+f":
		m.openPicker(pickMoveTarget, "Move to", m.moveTargets())
		return m, nil

	case "ctrl+b":
		m.openPicker(pickPaperColor, "Paper color", paperColorTargets())
		return m, nil

	case "ctrl+o":
		m.session.ToggleFavorite()
		if m.session.Note().Favorite {
			m.showToast("marked favorite", false)
		} else {
			m.showToast("favorite removed", false)
		}
		return m, tea.Batch(toastTick(), scheduleAutoSave(m.session.Generation()))

	case "ctrl+a":
		m.openPicker(pickAssistant, "Assistant", assistantTargets())
		return m, nil

	case "ctrl+x":
		m.promptFor = promptForAttach
		m.promptInput.Placeholder = "path to attach"
		m.promptInput.SetValue("")
		m.promptInput.Focus()
		m.modal = ModalPrompt
		return m, textinput.Blink

	case "ctrl+d":
		m.insertText(time.Now().Format("Monday, January 2, 2006") + "\n")
		return m, scheduleAutoSave(m.session.Generation())

	case "ctrl+g":
		m.showToast("looking up location...", false)
		return m, tea.Batch(toastTick(), locateCmd(m.locator))

	case "ctrl+r":
		return m.toggleSpeech()

	case "ctrl+y":
		if err := clipboard.WriteAll(m.session.PlainText()); err != nil {
			m.showToast("copy failed: "+err.Error(), true)
		} else {
			m.showToast("note copied", false)
		}
		return m, toastTick()
	}

	// Everything else edits the focused widget.
	var cmd tea.Cmd
	before := m.session.Generation()
	if m.editingTitle {
		m.titleInput, cmd = m.titleInput.Update(k)
	} else {
		m.body, cmd = m.body.Update(k)
	}
	m.syncSession()
	if after := m.session.Generation(); after != before {
		return m, tea.Batch(cmd, scheduleAutoSave(after))
	}
	return m, cmd
}

func (m Model) toggleSpeech() (tea.Model, tea.Cmd) {
	if m.speechActive {
		m.transcriber.Stop()
		m.speechActive = false
		m.showToast("dictation stopped", false)
		return m, toastTick()
	}
	ch, err := m.transcriber.Start(context.Background(), m.cfg.UI.SpeechLang)
	if err != nil {
		if errors.Is(err, capture.ErrUnsupported) {
			m.showToast("dictation is not available on this device", true)
		} else {
			m.showToast("dictation failed: "+err.Error(), true)
		}
		return m, toastTick()
	}
	m.speechActive = true
	m.speechCh = ch
	m.showToast("dictation started", false)
	return m, tea.Batch(toastTick(), listenSpeech(ch))
}

// --- modals ---

func (m Model) handleModalKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case ModalConfirm:
		return m.handleConfirmKey(k)
	case ModalPassword:
		return m.handlePasswordKey(k)
	case ModalNewFolder:
		return m.handleNewFolderKey(k)
	case ModalPicker:
		return m.handlePickerKey(k)
	case ModalPrompt:
		return m.handlePromptKey(k)
	case ModalNotice:
		m.modal = ModalNone
		m.notice = ""
		return m, nil
	}
	return m, nil
}

func (m Model) handleConfirmKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc", "n":
		m.modal = ModalNone
		m.confirmWhat = confirmNone
		return m, nil
	case "left", "right", "tab", "h", "l":
		m.confirm.ToggleFocus()
		return m, nil
	case "y":
		return m.executeConfirm()
	case "enter":
		if !m.confirm.ConfirmFocused {
			m.modal = ModalNone
			m.confirmWhat = confirmNone
			return m, nil
		}
		return m.executeConfirm()
	}
	return m, nil
}

func (m Model) executeConfirm() (tea.Model, tea.Cmd) {
	what, target := m.confirmWhat, m.confirmTarget
	m.modal = ModalNone
	m.confirmWhat = confirmNone
	m.confirmTarget = ""

	switch what {
	case confirmDeleteNote:
		if err := m.store.DeleteNote(target); err != nil {
			m.showToast(err.Error(), true)
			return m, toastTick()
		}
		m.showToast("note deleted", false)

	case confirmBulkDelete:
		count, err := m.sel.BulkDelete(m.store, true)
		if err != nil {
			m.showToast(err.Error(), true)
			return m, toastTick()
		}
		m.showToast(fmt.Sprintf("%d notes deleted", count), false)

	case confirmDeleteFolder:
		if _, err := m.store.DeleteFolder(target); err != nil {
			m.showToast(err.Error(), true)
			return m, toastTick()
		}
		if m.view.Kind == note.ViewFolder && m.view.FolderID == target {
			m.setView(note.AllView())
		}
		m.showToast("folder deleted", false)
	}
	m.refresh()
	return m, toastTick()
}

func (m Model) handlePasswordKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.vault.Cancel()
		m.modal = ModalNone
		m.passwordInput.Blur()
		return m, nil
	case "enter":
		err := m.vault.Submit(m.passwordInput.Value())
		switch {
		case err == nil:
			m.modal = ModalNone
			m.passwordInput.Blur()
			m.setView(note.VaultView())
			m.showToast("vault unlocked", false)
			return m, toastTick()
		case errors.Is(err, vault.ErrWrongPassword):
			m.passwordInput.SetValue("")
			m.showToast("wrong password", true)
			return m, toastTick()
		default:
			m.showToast(err.Error(), true)
			return m, toastTick()
		}
	}
	var cmd tea.Cmd
	m.passwordInput, cmd = m.passwordInput.Update(k)
	return m, cmd
}

func (m Model) handleNewFolderKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.modal = ModalNone
		m.folderInput.Blur()
		return m, nil
	case "enter":
		f, err := m.store.CreateFolder(m.folderInput.Value(), "")
		if err != nil {
			m.showToast(err.Error(), true)
			return m, toastTick()
		}
		m.modal = ModalNone
		m.folderInput.Blur()
		m.setView(note.FolderView(f.ID))
		m.showToast("folder created", false)
		return m, toastTick()
	}
	var cmd tea.Cmd
	m.folderInput, cmd = m.folderInput.Update(k)
	return m, cmd
}

func (m Model) handlePickerKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.modal = ModalNone
		m.pickWhat = pickNone
		return m, nil
	case "up", "k":
		m.picker.Up()
		return m, nil
	case "down", "j":
		m.picker.Down()
		return m, nil
	case "enter":
		item, ok := m.picker.Selected()
		if !ok {
			m.modal = ModalNone
			return m, nil
		}
		return m.applyPick(item)
	}
	return m, nil
}

func (m Model) handlePromptKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.modal = ModalNone
		m.promptInput.Blur()
		return m, nil
	case "enter":
		value := m.promptInput.Value()
		m.modal = ModalNone
		m.promptInput.Blur()
		if m.promptFor == promptForAttach {
			return m.attachFile(value)
		}
		return m.startAssistant(ai.OpCustom, value)
	}
	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(k)
	return m, cmd
}

func (m Model) attachFile(path string) (tea.Model, tea.Cmd) {
	att, err := ai.LoadAttachment(path)
	if err != nil {
		if errors.Is(err, ai.ErrAttachmentTooLarge) {
			m.showToast("attachment exceeds the 5 MB limit", true)
		} else {
			m.showToast("attach failed: "+err.Error(), true)
		}
		return m, toastTick()
	}
	m.attachment = att
	m.showToast("attached "+att.Name, false)
	return m, toastTick()
}

// --- picker construction and application ---

func (m *Model) openPicker(what pickerAction, title string, items []ui.PickerItem) {
	m.pickWhat = what
	m.picker = ui.NewPicker(title, items)
	m.modal = ModalPicker
}

func (m *Model) moveTargets() []ui.PickerItem {
	items := []ui.PickerItem{{Label: "All Notes", Value: ""}}
	for _, f := range m.store.Folders() {
		items = append(items, ui.PickerItem{Label: f.Name, Value: f.ID})
	}
	return items
}

func (m *Model) viewTargets() []ui.PickerItem {
	items := []ui.PickerItem{{Label: "All Notes", Value: "all"}}
	for _, c := range note.Categories() {
		items = append(items, ui.PickerItem{Label: string(c), Value: "cat:" + string(c)})
	}
	for _, f := range m.store.Folders() {
		items = append(items, ui.PickerItem{Label: "📁 " + f.Name, Value: "folder:" + f.ID})
	}
	items = append(items, ui.PickerItem{Label: "🔒 Secret", Value: "vault"})
	return items
}

func categoryTargets() []ui.PickerItem {
	var items []ui.PickerItem
	for _, c := range note.Categories() {
		items = append(items, ui.PickerItem{Label: string(c), Value: string(c)})
	}
	items = append(items, ui.PickerItem{Label: string(note.CategorySecret), Value: string(note.CategorySecret)})
	return items
}

func languageTargets() []ui.PickerItem {
	items := []ui.PickerItem{{Label: "Rich text", Value: ""}}
	for _, lang := range note.Languages {
		items = append(items, ui.PickerItem{Label: lang, Value: lang})
	}
	return items
}

func paperColorTargets() []ui.PickerItem {
	var items []ui.PickerItem
	for _, c := range note.PaperColors {
		items = append(items, ui.PickerItem{Label: c, Value: c})
	}
	return items
}

func paperStyleTargets() []ui.PickerItem {
	var items []ui.PickerItem
	for _, s := range note.PaperStyles {
		items = append(items, ui.PickerItem{Label: s, Value: s})
	}
	return items
}

func assistantTargets() []ui.PickerItem {
	return []ui.PickerItem{
		{Label: "Generate title", Value: "title"},
		{Label: "Summarize", Value: "summarize"},
		{Label: "Continue writing", Value: "continue"},
		{Label: "Fix grammar", Value: "grammar"},
		{Label: "Ask with a prompt...", Value: "custom"},
	}
}

func (m Model) applyPick(item ui.PickerItem) (tea.Model, tea.Cmd) {
	what := m.pickWhat
	m.modal = ModalNone
	m.pickWhat = pickNone

	switch what {
	case pickView:
		return m.applyViewPick(item.Value)

	case pickMoveTarget:
		if m.screen == ScreenEditor && m.session != nil {
			m.session.SetFolder(item.Value)
			m.showToast("moved to "+item.Label, false)
			return m, tea.Batch(toastTick(), scheduleAutoSave(m.session.Generation()))
		}
		count, err := m.sel.BulkMove(m.store, item.Value)
		if err != nil {
			m.showToast(err.Error(), true)
			return m, toastTick()
		}
		m.refresh()
		m.showToast(fmt.Sprintf("%d notes moved to %s", count, item.Label), false)
		return m, toastTick()

	case pickCategory:
		m.session.SetCategory(note.Category(item.Value))
		m.showToast("category set to "+item.Label, false)
		return m, tea.Batch(toastTick(), scheduleAutoSave(m.session.Generation()))

	case pickLanguage:
		if item.Value == "" {
			m.session.ToRich()
		} else if err := m.session.ToCode(item.Value); err != nil {
			m.showToast(err.Error(), true)
			return m, toastTick()
		}
		m.pushSession()
		return m, scheduleAutoSave(m.session.Generation())

	case pickPaperColor:
		m.pendingColor = item.Value
		m.openPicker(pickPaperStyle, "Paper style", paperStyleTargets())
		return m, nil

	case pickPaperStyle:
		m.session.SetPaper(m.pendingColor, item.Value)
		m.pendingColor = ""
		m.showToast("paper updated", false)
		return m, tea.Batch(toastTick(), scheduleAutoSave(m.session.Generation()))

	case pickAssistant:
		switch item.Value {
		case "custom":
			m.promptFor = promptForAI
			m.promptInput.Placeholder = "ask the assistant"
			m.promptInput.SetValue("")
			m.promptInput.Focus()
			m.modal = ModalPrompt
			return m, textinput.Blink
		case "title":
			return m.startAssistant(ai.OpTitle, "")
		case "summarize":
			return m.startAssistant(ai.OpSummarize, "")
		case "continue":
			return m.startAssistant(ai.OpContinue, "")
		case "grammar":
			return m.startAssistant(ai.OpGrammar, "")
		}
	}
	return m, nil
}

func (m Model) applyViewPick(value string) (tea.Model, tea.Cmd) {
	switch {
	case value == "all":
		m.setView(note.AllView())
	case value == "vault":
		return m.requestVault()
	case len(value) > 4 && value[:4] == "cat:":
		m.setView(note.CategoryView(note.Category(value[4:])))
	case len(value) > 7 && value[:7] == "folder:":
		m.setView(note.FolderView(value[7:]))
	}
	return m, nil
}

func (m Model) startAssistant(op ai.Op, prompt string) (tea.Model, tea.Cmd) {
	m.syncSession()
	att := m.attachment
	m.attachment = nil
	run, err := m.orch.Start(op, prompt, m.session, att)
	if err != nil {
		if errors.Is(err, ai.ErrBusy) {
			m.showToast("the assistant is still working", true)
		} else {
			m.showToast(err.Error(), true)
		}
		return m, toastTick()
	}
	m.showToast(op.String()+"...", false)
	return m, tea.Batch(toastTick(), runAI(run))
}
