package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"nyt_movies/internal/app"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reloadMsg:
		if !msg.ok {
			return m, nil
		}
		if msg.critic != nil {
			if msg.critic == m.critic {
				m.renderCritic(msg.reload)
			}
			return m, nil
		}
		if m.mode != modeCritic {
			m.Render(msg.reload)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeDate:
			return m.updateDate(msg)
		case modeCritic:
			return m.updateCritic(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		next := app.CategoryCritics
		if m.browser.Category() == app.CategoryCritics {
			next = app.CategoryReviews
		}
		m.Render(m.browser.SelectCategory(next))
		return m, m.call(m.browser.Start)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.browser.Count()-1 {
			m.cursor++
		}
		return m, m.callIndex(m.browser.ShouldLoadNextPage, m.cursor)

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.input.Placeholder = "search " + m.browser.Category().String()
		m.input.SetValue(m.browser.Query())
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Filter):
		if m.browser.Category() != app.CategoryReviews {
			return m, nil
		}
		m.mode = modeDate
		m.input.Placeholder = "YYYY-MM-DD"
		m.input.SetValue("")
		if since, ok := m.browser.Since(); ok {
			m.input.SetValue(since.Format(dateInputFormat))
		}
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Unfilter):
		if m.browser.Category() != app.CategoryReviews {
			return m, nil
		}
		m.Render(m.browser.ClearFilter())
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.status = "Refreshing " + m.browser.Category().String()
		return m, m.call(m.browser.Refresh)

	case key.Matches(msg, m.keys.Open):
		if m.browser.Category() != app.CategoryCritics {
			return m, nil
		}
		c, err := m.browser.OpenCritic(m.cursor)
		if err != nil {
			return m, nil
		}
		m.critic = c
		m.criticCursor = 0
		m.mode = modeCritic
		m.status = "Loading reviews by " + c.Critic().DisplayName
		return m, m.setupCritic(c)
	}
	return m, nil
}

// updateSearch forwards keys to the input and searches on every edit.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) || key.Matches(msg, m.keys.Back) {
		m.mode = modeList
		m.input.Blur()
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.search(m.input.Value()))
}

func (m Model) updateDate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeList
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		since, err := time.Parse(dateInputFormat, m.input.Value())
		if err != nil {
			m.status = "Invalid date, use YYYY-MM-DD"
			m.statusErr = true
			return m, nil
		}
		m.mode = modeList
		m.input.Blur()
		m.Render(m.browser.FilterChanged(since))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateCritic(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.mode = modeList
		m.critic = nil
		m.status = countStatus(m.browser.Count(), m.browser.Category())
		m.statusErr = false
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.criticCursor > 0 {
			m.criticCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.criticCursor < m.critic.Len()-1 {
			m.criticCursor++
		}
		return m, m.nextCriticPage(m.critic, m.criticCursor)
	}
	return m, nil
}
