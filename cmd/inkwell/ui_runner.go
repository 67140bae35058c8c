package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"inkwell/internal/driver"
	"inkwell/internal/ui"
)

type diagOutcome struct {
	results []driver.FileResult
	err     error
}

// runDiagnoseWithUI runs the batch while a Bubble Tea program renders its
// progress. files is the expanded list shown in the UI; paths go to the driver.
func runDiagnoseWithUI(ctx context.Context, title string, files, paths []string, req driver.Options) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan diagOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.AnalyzeFiles(ctx, paths, reqCopy)
		outcomeCh <- diagOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI умер раньше времени: дочитываем события, чтобы воркеры не встали
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
