package cli

import (
	"fmt"
	"strings"

	"littlelemon/internal/data/profile"
)

func renderHeader(m model) string {
	header := titleStyle("Little Lemon")
	if initials := profile.Initials(m.profile); initials != "" {
		header += "  " + activeChipStyle.Render(initials)
	}
	return header
}

func renderOnboarding(m model) string {
	next := disabledStyle.Render("[ Next ]")
	if m.onboardingValid() {
		next = activeChipStyle.Render("[ Next ]")
	}
	return strings.Join([]string{
		renderHeader(m),
		"",
		"Let us get to know you",
		"",
		m.firstNameInput.View(),
		m.emailInput.View(),
		"",
		next,
		"",
		statusStyle.Render("Keys: tab switch field | enter next | ctrl+c quit"),
	}, "\n")
}

func renderHome(m model) string {
	chips := make([]string, 0, len(m.categories))
	for i, c := range m.categories {
		label := fmt.Sprintf("%d %s", i+1, c)
		if m.filter.Has(c) {
			chips = append(chips, activeChipStyle.Render(label))
		} else {
			chips = append(chips, chipStyle.Render(label))
		}
	}

	status := statusStyle.Render(fmt.Sprintf("%d items | updated %s", len(m.items), m.lastUpdate.Format("15:04:05")))
	body := m.menuList.View()
	if len(m.items) == 0 {
		body = statusStyle.Render("No dishes match the current filter.")
	}

	return strings.Join([]string{
		renderHeader(m),
		m.searchInput.View(),
		strings.Join(chips, " "),
		status,
		"",
		body,
		"",
		renderHelp(m),
	}, "\n")
}

func renderProfile(m model) string {
	labels := []string{"First name", "Last name", "Email", "Phone"}
	lines := []string{renderHeader(m), "", "Personal information"}
	for i, in := range m.profileInputs {
		lines = append(lines, fmt.Sprintf("%-11s %s", labels[i], in.View()))
	}

	lines = append(lines, "", "Email notifications")
	for i, key := range profile.NotificationKeys {
		box := "[ ]"
		if m.profile.Notifications.Get(key) {
			box = "[x]"
		}
		cursor := "  "
		if m.profileFocus == profileFieldCount+i {
			cursor = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", cursor, box, profile.NotificationLabel(key)))
	}

	if m.dirty {
		lines = append(lines, "", statusStyle.Render("Unsaved changes"))
	}
	lines = append(lines, "", renderHelp(m))
	return strings.Join(lines, "\n")
}

func renderHelp(m model) string {
	keys := "Keys: / search | 1-4 categories | r refresh | p profile | q quit"
	switch {
	case m.screen == screenProfile:
		keys = "Keys: tab next | space toggle | ctrl+s save | ctrl+d discard | ctrl+l log out | esc back"
	case m.searchFocused:
		keys = "Keys: type to search | enter/esc done"
	}
	return statusStyle.Render(keys)
}
