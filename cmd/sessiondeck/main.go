package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sessiondeck/sessiondeck/internal/app"
	"github.com/sessiondeck/sessiondeck/internal/client"
	"github.com/sessiondeck/sessiondeck/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	url := flag.String("url", "", "Base URL of the sessiondeck server (overrides config)")
	token := flag.String("token", "", "Auth token (overrides config)")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *url != "" {
		cfg.Client.URL = *url
	}
	if *token != "" {
		cfg.Client.Token = *token
	}

	// The observer goroutine feeds the UI loop through this channel. The
	// send blocks while the UI is draining (keeps delivery in receipt
	// order) but falls through once the loop has exited, so stream
	// teardown can never wedge behind a full buffer.
	events := make(chan client.Event, 64)
	uiDone := make(chan struct{})
	stream := client.NewStream(cfg.Client.URL, cfg.Client.Token, cfg.Client.Retry, func(ev client.Event) {
		select {
		case events <- ev:
		case <-uiDone:
		}
	})
	ctrl := client.NewController(cfg.Client.URL, cfg.Client.Token, stream)

	m := app.New(ctrl, stream, events, cfg.Client.ShowSubmitErrors)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err = p.Run()
	close(uiDone)
	stream.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
