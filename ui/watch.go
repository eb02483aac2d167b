package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/lectorhq/lector/extract"
	"github.com/lectorhq/lector/speech"
)

type fileChangedMsg struct{ path string }

type watchErrMsg struct{ err error }

// watchFileCmd blocks until the document changes on disk. Editors often
// replace files on save, so the watch covers the directory and filters for
// the target name.
func watchFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return watchErrMsg{err}
		}
		defer watcher.Close()

		abs, err := filepath.Abs(path)
		if err != nil {
			return watchErrMsg{err}
		}
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return watchErrMsg{err}
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return watchErrMsg{err: fsnotify.ErrEventOverflow}
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					return fileChangedMsg{path: path}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return watchErrMsg{err: fsnotify.ErrEventOverflow}
				}
				return watchErrMsg{err}
			}
		}
	}
}

// reloadCmd re-extracts the document and swaps it into the controller.
func reloadCmd(ctrl *speech.Controller, path string) tea.Cmd {
	return func() tea.Msg {
		text, err := extract.File(path)
		if err != nil {
			return speech.DocumentLoadedMsg{Err: err}
		}
		doc, err := ctrl.LoadText(text)
		return speech.DocumentLoadedMsg{Document: doc, Err: err}
	}
}
