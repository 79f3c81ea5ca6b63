package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"phonebook/internal/apiclient"
	"phonebook/internal/sync"
	"phonebook/internal/tui"
)

// main wires the API client, the sync core and the terminal UI. The server
// address comes from PHONEBOOK_URL and defaults to the local dev server.
func main() {
	baseURL := os.Getenv("PHONEBOOK_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}

	client := apiclient.New(baseURL)

	// Notification timers expire outside the bubbletea loop; wake the
	// program so the banner disappears on time.
	var program *tea.Program
	core := sync.New(client, sync.WithOnChange(func() {
		if program != nil {
			program.Send(tui.RefreshMsg{})
		}
	}))
	program = tea.NewProgram(tui.New(core), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "phonebook:", err)
		os.Exit(1)
	}
}
