package cli

import (
	"context"
	"fmt"
	"time"

	"littlelemon/internal/core/ports"
	"littlelemon/internal/data/menu"
	"littlelemon/internal/data/profile"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F4CE14")).
			Background(lipgloss.Color("#495E57")).
			Padding(0, 1).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	activeChipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#495E57")).
			Padding(0, 1)

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#495E57")).
			Background(lipgloss.Color("#EDEFEE")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))
)

// profileService is the part of profile.Service the UI drives.
type profileService interface {
	OnboardingCompleted(ctx context.Context) (bool, error)
	CompleteOnboarding(ctx context.Context, firstName, email string) (profile.Profile, error)
	Load(ctx context.Context) (profile.Profile, error)
	Save(ctx context.Context, p profile.Profile) error
	Logout(ctx context.Context) error
}

type screen int

const (
	screenLoading screen = iota
	screenOnboarding
	screenHome
	screenProfile
)

const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldPhone
	profileFieldCount
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type model struct {
	ctx      context.Context
	menuSvc  ports.MenuService
	profiles profileService
	screen   screen

	// onboarding
	firstNameInput textinput.Model
	emailInput     textinput.Model
	onboardFocus   int

	// home
	searchInput   textinput.Model
	searchFocused bool
	categories    []string
	filter        menu.Filter
	items         []menu.Item
	menuList      list.Model
	debounce      time.Duration
	searchSeq     int
	querySeq      int
	lastUpdate    time.Time

	// profile
	profile       profile.Profile
	profileInputs []textinput.Model
	profileFocus  int
	dirty         bool

	status    string
	statusErr bool
}

type onboardingStateMsg struct {
	completed bool
	profile   profile.Profile
	err       error
}

type onboardedMsg struct {
	profile profile.Profile
	err     error
}

type menuLoadedMsg struct {
	seq   int
	items []menu.Item
	err   error
}

type searchTickMsg struct {
	seq int
}

type profileLoadedMsg struct {
	profile profile.Profile
	err     error
}

type profileSavedMsg struct {
	err error
}

type loggedOutMsg struct {
	err error
}

type configUpdateMsg struct {
	categories []string
	debounce   time.Duration
}

func initialModel(ctx context.Context, menuSvc ports.MenuService, profiles profileService, categories []string, debounce time.Duration) model {
	if ctx == nil {
		ctx = context.Background()
	}

	firstName := textinput.New()
	firstName.Placeholder = "First name"
	firstName.CharLimit = 40
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 80

	search := textinput.New()
	search.Placeholder = "Search menu"
	search.Prompt = "/ "
	search.CharLimit = 100

	menuList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	menuList.Title = "Order for delivery"
	menuList.SetShowStatusBar(false)
	menuList.SetFilteringEnabled(false)
	menuList.SetShowHelp(false)

	inputs := make([]textinput.Model, profileFieldCount)
	for i, placeholder := range []string{"First name", "Last name", "Email", "Phone"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 80
		inputs[i] = in
	}
	inputs[fieldPhone].CharLimit = len("(999) 999-9999")

	return model{
		ctx:            ctx,
		menuSvc:        menuSvc,
		profiles:       profiles,
		screen:         screenLoading,
		firstNameInput: firstName,
		emailInput:     email,
		searchInput:    search,
		categories:     append([]string(nil), categories...),
		menuList:       menuList,
		debounce:       debounce,
		profileInputs:  inputs,
	}
}

func (m model) Init() tea.Cmd {
	return checkOnboardingCmd(m.ctx, m.profiles)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyActions(msg, m)
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		height := msg.Height - v - 8
		if height < 5 {
			height = 5
		}
		m.menuList.SetSize(msg.Width-h, height)
		return m, nil
	case onboardingStateMsg:
		if msg.err != nil {
			m.setError("Could not read onboarding state", msg.err)
		}
		if !msg.completed {
			return m.enterOnboarding()
		}
		m.profile = msg.profile
		return m.enterHome()
	case onboardedMsg:
		if msg.err != nil {
			m.setError("Onboarding failed", msg.err)
			return m, nil
		}
		m.profile = msg.profile
		m.clearStatus()
		return m.enterHome()
	case searchTickMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		return m.reloadMenu()
	case menuLoadedMsg:
		if msg.seq != m.querySeq {
			return m, nil
		}
		if msg.err != nil {
			m.setError("Menu unavailable", msg.err)
			return m, nil
		}
		m.clearStatus()
		m.setItems(msg.items)
		m.lastUpdate = time.Now()
		return m, nil
	case profileLoadedMsg:
		if msg.err != nil {
			m.setError("Could not load profile", msg.err)
		}
		m.profile = msg.profile
		m.fillProfileInputs()
		m.dirty = false
		return m, nil
	case profileSavedMsg:
		if msg.err != nil {
			m.setError("Save failed", msg.err)
			return m, nil
		}
		m.dirty = false
		m.status = successStyle.Render("Changes saved")
		m.statusErr = false
		return m, loadProfileCmd(m.ctx, m.profiles)
	case loggedOutMsg:
		if msg.err != nil {
			m.setError("Logout failed", msg.err)
			return m, nil
		}
		m.profile = profile.Profile{}
		m.clearStatus()
		return m.enterOnboarding()
	case configUpdateMsg:
		return m.applyConfigUpdate(msg)
	}

	var cmd tea.Cmd
	if m.screen == screenHome {
		m.menuList, cmd = m.menuList.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	var body string
	switch m.screen {
	case screenOnboarding:
		body = renderOnboarding(m)
	case screenHome:
		body = renderHome(m)
	case screenProfile:
		body = renderProfile(m)
	default:
		body = statusStyle.Render("Loading...")
	}
	if m.status != "" {
		body += "\n\n" + m.status
	}
	return docStyle.Render(body)
}

func (m *model) setError(prefix string, err error) {
	m.status = errorStyle.Render(fmt.Sprintf("%s: %v", prefix, err))
	m.statusErr = true
}

func (m *model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m *model) setItems(items []menu.Item) {
	m.items = items
	listItems := make([]list.Item, 0, len(items))
	for _, it := range items {
		desc := fmt.Sprintf("$%.2f | %s", it.Price, it.Category)
		if it.Description != "" {
			desc += " | " + it.Description
		}
		listItems = append(listItems, item{title: it.Name, desc: desc})
	}
	m.menuList.SetItems(listItems)
}

func (m *model) fillProfileInputs() {
	m.profileInputs[fieldFirstName].SetValue(m.profile.FirstName)
	m.profileInputs[fieldLastName].SetValue(m.profile.LastName)
	m.profileInputs[fieldEmail].SetValue(m.profile.Email)
	m.profileInputs[fieldPhone].SetValue(profile.FormatPhone(m.profile.Phone))
}

// profileFromInputs returns the edited profile. Notification switches live
// on m.profile directly.
func (m model) profileFromInputs() profile.Profile {
	p := m.profile
	p.FirstName = m.profileInputs[fieldFirstName].Value()
	p.LastName = m.profileInputs[fieldLastName].Value()
	p.Email = m.profileInputs[fieldEmail].Value()
	p.Phone = profile.RawPhone(m.profileInputs[fieldPhone].Value())
	return p
}

func (m model) onboardingValid() bool {
	return profile.IsValidFirstName(m.firstNameInput.Value()) && profile.IsValidEmail(m.emailInput.Value())
}

func (m model) applyConfigUpdate(msg configUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.debounce > 0 {
		m.debounce = msg.debounce
	}
	if len(msg.categories) == 0 {
		return m, nil
	}
	m.categories = append([]string(nil), msg.categories...)

	kept := make([]string, 0, len(m.filter.Categories))
	for _, c := range m.filter.Categories {
		for _, allowed := range m.categories {
			if c == allowed {
				kept = append(kept, c)
				break
			}
		}
	}
	if len(kept) == len(m.filter.Categories) {
		return m, nil
	}
	m.filter.Categories = kept
	if m.screen != screenHome {
		return m, nil
	}
	return m.reloadMenu()
}
