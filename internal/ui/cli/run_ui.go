package cli

import (
	"context"

	coreapp "littlelemon/internal/core/app"

	tea "github.com/charmbracelet/bubbletea"
)

func runUI(ctx context.Context, app *coreapp.App) error {
	current := app.CurrentUpdate()
	m := initialModel(ctx, app.MenuService(), app.Profile, current.Categories, current.SearchDebounce)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	app.SetUpdateHandler(func(update coreapp.Update) {
		p.Send(configUpdateMsg{
			categories: update.Categories,
			debounce:   update.SearchDebounce,
		})
	})
	defer app.SetUpdateHandler(nil)

	_, err := p.Run()
	return err
}
