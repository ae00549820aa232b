package cli

import (
	"context"
	"strings"
	"time"

	"littlelemon/internal/core/ports"
	"littlelemon/internal/data/menu"
	"littlelemon/internal/data/profile"

	tea "github.com/charmbracelet/bubbletea"
)

func handleKeyActions(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenOnboarding:
		return handleOnboardingKeys(msg, m)
	case screenHome:
		return handleHomeKeys(msg, m)
	case screenProfile:
		return handleProfileKeys(msg, m)
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}
	return m, nil
}

func handleOnboardingKeys(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.onboardFocus = (m.onboardFocus + 1) % 2
		return m, m.focusOnboarding()
	case "enter":
		if !m.onboardingValid() {
			m.status = errorStyle.Render("Enter a first name (letters only) and a valid email")
			m.statusErr = true
			return m, nil
		}
		return m, completeOnboardingCmd(m.ctx, m.profiles, m.firstNameInput.Value(), m.emailInput.Value())
	}

	var cmd tea.Cmd
	if m.onboardFocus == 0 {
		m.firstNameInput, cmd = m.firstNameInput.Update(msg)
	} else {
		m.emailInput, cmd = m.emailInput.Update(msg)
	}
	return m, cmd
}

func handleHomeKeys(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.String() {
		case "esc", "enter":
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil
		}
		before := m.searchInput.Value()
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		if m.searchInput.Value() == before {
			return m, cmd
		}
		m.searchSeq++
		return m, tea.Batch(cmd, searchTickCmd(m.searchSeq, m.debounce))
	}

	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchFocused = true
		return m, m.searchInput.Focus()
	case "p":
		return m.enterProfile()
	case "r":
		return m.reloadMenu()
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(m.categories) {
			m.filter = m.filter.Toggle(m.categories[idx])
			return m.reloadMenu()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menuList, cmd = m.menuList.Update(msg)
	return m, cmd
}

// Profile focus runs over the text fields first, then the notification switches.
func handleProfileKeys(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	focusCount := profileFieldCount + len(profile.NotificationKeys)
	switch msg.String() {
	case "esc":
		return m.enterHome()
	case "tab", "down":
		m.profileFocus = (m.profileFocus + 1) % focusCount
		return m, m.focusProfile()
	case "shift+tab", "up":
		m.profileFocus = (m.profileFocus + focusCount - 1) % focusCount
		return m, m.focusProfile()
	case "ctrl+s":
		p := m.profileFromInputs()
		if err := p.Validate(); err != nil {
			m.setError("Save failed", err)
			return m, nil
		}
		return m, saveProfileCmd(m.ctx, m.profiles, p)
	case "ctrl+d":
		m.clearStatus()
		return m, loadProfileCmd(m.ctx, m.profiles)
	case "ctrl+l":
		return m, logoutCmd(m.ctx, m.profiles)
	}

	if m.profileFocus >= profileFieldCount {
		switch msg.String() {
		case " ", "enter", "x":
			key := profile.NotificationKeys[m.profileFocus-profileFieldCount]
			m.profile.Notifications = m.profile.Notifications.Toggle(key)
			m.dirty = true
		}
		return m, nil
	}

	idx := m.profileFocus
	before := m.profileInputs[idx].Value()
	var cmd tea.Cmd
	m.profileInputs[idx], cmd = m.profileInputs[idx].Update(msg)
	if idx == fieldPhone {
		masked := profile.FormatPhone(profile.RawPhone(m.profileInputs[idx].Value()))
		m.profileInputs[idx].SetValue(masked)
		m.profileInputs[idx].CursorEnd()
	}
	if m.profileInputs[idx].Value() != before {
		m.dirty = true
	}
	return m, cmd
}

func (m model) enterOnboarding() (tea.Model, tea.Cmd) {
	m.screen = screenOnboarding
	m.firstNameInput.SetValue("")
	m.emailInput.SetValue("")
	m.onboardFocus = 0
	return m, m.focusOnboarding()
}

func (m model) enterHome() (tea.Model, tea.Cmd) {
	m.screen = screenHome
	m.searchFocused = false
	m.searchInput.Blur()
	for i := range m.profileInputs {
		m.profileInputs[i].Blur()
	}
	return m.reloadMenu()
}

func (m model) enterProfile() (tea.Model, tea.Cmd) {
	m.screen = screenProfile
	m.profileFocus = 0
	m.fillProfileInputs()
	focus := m.focusProfile()
	return m, tea.Batch(focus, loadProfileCmd(m.ctx, m.profiles))
}

// reloadMenu issues a query for the current filter. Results for older
// queries are dropped when they arrive.
func (m model) reloadMenu() (tea.Model, tea.Cmd) {
	m.querySeq++
	m.filter.Search = strings.TrimSpace(m.searchInput.Value())
	return m, loadMenuCmd(m.ctx, m.menuSvc, m.filter, m.querySeq)
}

func (m *model) focusOnboarding() tea.Cmd {
	if m.onboardFocus == 0 {
		m.emailInput.Blur()
		return m.firstNameInput.Focus()
	}
	m.firstNameInput.Blur()
	return m.emailInput.Focus()
}

func (m *model) focusProfile() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.profileInputs {
		if i == m.profileFocus {
			cmd = m.profileInputs[i].Focus()
		} else {
			m.profileInputs[i].Blur()
		}
	}
	return cmd
}

func checkOnboardingCmd(ctx context.Context, profiles profileService) tea.Cmd {
	return func() tea.Msg {
		if profiles == nil {
			return onboardingStateMsg{completed: true}
		}
		done, err := profiles.OnboardingCompleted(ctx)
		if err != nil || !done {
			return onboardingStateMsg{completed: done, err: err}
		}
		p, err := profiles.Load(ctx)
		return onboardingStateMsg{completed: true, profile: p, err: err}
	}
}

func completeOnboardingCmd(ctx context.Context, profiles profileService, firstName, email string) tea.Cmd {
	return func() tea.Msg {
		p, err := profiles.CompleteOnboarding(ctx, firstName, email)
		return onboardedMsg{profile: p, err: err}
	}
}

func loadMenuCmd(ctx context.Context, svc ports.MenuService, f menu.Filter, seq int) tea.Cmd {
	f.Categories = append([]string(nil), f.Categories...)
	return func() tea.Msg {
		items, err := svc.List(ctx, f)
		return menuLoadedMsg{seq: seq, items: items, err: err}
	}
}

func searchTickCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func loadProfileCmd(ctx context.Context, profiles profileService) tea.Cmd {
	return func() tea.Msg {
		p, err := profiles.Load(ctx)
		return profileLoadedMsg{profile: p, err: err}
	}
}

func saveProfileCmd(ctx context.Context, profiles profileService, p profile.Profile) tea.Cmd {
	return func() tea.Msg {
		return profileSavedMsg{err: profiles.Save(ctx, p)}
	}
}

func logoutCmd(ctx context.Context, profiles profileService) tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: profiles.Logout(ctx)}
	}
}
