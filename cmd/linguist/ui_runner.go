package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"linguist/internal/check"
	"linguist/internal/ui"
)

type checkOutcome struct {
	results []check.Result
	err     error
}

func runCheckWithUI(ctx context.Context, title string, req check.Request) ([]check.Result, error) {
	events := make(chan check.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Progress = check.ChannelSink{Ch: events}
		res, err := check.Files(ctx, reqCopy)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
