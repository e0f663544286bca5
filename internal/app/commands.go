package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/inkwell/internal/ai"
	"github.com/marcus/inkwell/internal/capture"
	"github.com/marcus/inkwell/internal/editor"
	"github.com/marcus/inkwell/internal/store"
)

// autoSaveTickMsg fires when an edit's quiescence window elapses. Gen
// ties it to the edit that scheduled it; a newer edit makes it stale.
type autoSaveTickMsg struct {
	Gen int
}

// aiResultMsg carries a completed assistant call back to Update.
type aiResultMsg struct {
	Res ai.Result
}

// reloadMsg reports an external change to a data file.
type reloadMsg struct {
	Key string
}

// toastTickMsg drives toast expiry.
type toastTickMsg struct{}

// locationMsg carries a one-shot geolocation fix, or its failure.
type locationMsg struct {
	Pos capture.Position
	Err error
}

// speechMsg delivers one transcribed utterance. OK is false when the
// stream ended.
type speechMsg struct {
	Text string
	OK   bool
}

// scheduleAutoSave starts the quiescence timer for one edit
// generation. Every edit schedules a fresh tick; stale ticks are
// dropped in Update by generation compare.
func scheduleAutoSave(gen int) tea.Cmd {
	return tea.Tick(editor.AutosaveDelay, func(time.Time) tea.Msg {
		return autoSaveTickMsg{Gen: gen}
	})
}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

// watchCmd waits for the next external data-file change. Re-issued
// after every delivery; a closed watcher ends the chain.
func watchCmd(w *store.Watcher) tea.Cmd {
	return func() tea.Msg {
		key, ok := <-w.Events()
		if !ok {
			return nil
		}
		return reloadMsg{Key: key}
	}
}

// runAI executes the blocking service call off the event loop.
func runAI(run func() ai.Result) tea.Cmd {
	return func() tea.Msg {
		return aiResultMsg{Res: run()}
	}
}

// listenSpeech waits for the next utterance from an open dictation
// stream. Re-issued after every delivery while dictation is active.
func listenSpeech(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		text, ok := <-ch
		return speechMsg{Text: text, OK: ok}
	}
}

// locateCmd performs the one-shot geolocation lookup.
func locateCmd(loc capture.Locator) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pos, err := loc.Locate(ctx)
		return locationMsg{Pos: pos, Err: err}
	}
}
