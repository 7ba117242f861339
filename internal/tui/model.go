// Package tui is the terminal front end: a bubbletea program that drives
// app.Browser and app.CriticReviews and redraws on every app.Reload.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nyt_movies/internal/app"
)

const dateInputFormat = "2006-01-02"

type mode int

const (
	modeList mode = iota
	modeSearch
	modeDate
	modeCritic
)

// ---------------------------------------------------------------------------
// Bubble Tea messages
// ---------------------------------------------------------------------------

// reloadMsg carries the result of a blocking coordinator call. critic is set
// when the call was made on behalf of a critic detail screen.
type reloadMsg struct {
	reload app.Reload
	ok     bool
	critic *app.CriticReviews
}

// Model is the bubbletea model. The zero value is not usable; call New.
type Model struct {
	ctx     context.Context
	browser *app.Browser
	critic  *app.CriticReviews

	keys    keyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model

	mode         mode
	cursor       int
	criticCursor int
	switching    bool
	status       string
	statusErr    bool
	width        int
	height       int
}

func New(ctx context.Context, b *app.Browser) Model {
	in := textinput.New()
	in.CharLimit = 80
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cursorStyle
	return Model{
		ctx:     ctx,
		browser: b,
		keys:    defaultKeys(),
		help:    help.New(),
		input:   in,
		spinner: sp,
		status:  "Loading reviews",
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.call(m.browser.Start))
}

// ---------------------------------------------------------------------------
// Tea commands
// ---------------------------------------------------------------------------

// call runs a browser operation off the update loop.
func (m Model) call(f func(context.Context) (app.Reload, bool)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		r, ok := f(ctx)
		return reloadMsg{reload: r, ok: ok}
	}
}

func (m Model) callIndex(f func(context.Context, int) (app.Reload, bool), i int) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		r, ok := f(ctx, i)
		return reloadMsg{reload: r, ok: ok}
	}
}

// search begins the load for text before returning, so searches issued on
// the update loop take effect in keystroke order.
func (m Model) search(text string) tea.Cmd {
	ctx, run := m.ctx, m.browser.BeginSearch(text)
	return func() tea.Msg {
		r, ok := run(ctx)
		return reloadMsg{reload: r, ok: ok}
	}
}

func (m Model) setupCritic(c *app.CriticReviews) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		r, ok := c.Setup(ctx)
		return reloadMsg{reload: r, ok: ok, critic: c}
	}
}

func (m Model) nextCriticPage(c *app.CriticReviews, i int) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		r, ok := c.ShouldLoadNextPage(ctx, i)
		return reloadMsg{reload: r, ok: ok, critic: c}
	}
}
