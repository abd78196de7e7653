package tui_cmd

import (
	"arkiv/database"
	"arkiv/tui"
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func Execute(ctx context.Context, args []string) error {
	db, err := database.OpenDefault(ctx)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	app := tui.NewApp(ctx, db)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
