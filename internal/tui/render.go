package tui

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"nyt_movies/internal/app"
)

// Render applies one reload to the screen state. Reloads for a category that
// is no longer shown are dropped.
func (m *Model) Render(r app.Reload) {
	log.Debug().Stringer("kind", r.Kind).Stringer("category", r.Category).Int("count", r.Count).Msg("reload")

	if r.Kind != app.ReloadCategorySwitch && r.Category != m.browser.Category() {
		return
	}
	m.statusErr = false

	switch r.Kind {
	case app.ReloadCategorySwitch:
		m.switching = true
		m.cursor = 0
		m.status = "Loading " + r.Category.String()
	case app.ReloadReplace:
		m.switching = false
		m.cursor = 0
		m.status = countStatus(r.Count, r.Category)
	case app.ReloadAppend:
		m.switching = false
		m.status = countStatus(r.Count, r.Category)
	case app.ReloadNoResults:
		m.cursor = 0
		m.status = r.Message()
		m.statusErr = true
	case app.ReloadError:
		m.switching = false
		m.status = r.Message()
		m.statusErr = true
		log.Warn().Err(r.Err).Stringer("category", r.Category).Msg("load failed")
	}
	m.cursor = clamp(m.cursor, m.browser.Count())
}

func (m *Model) renderCritic(r app.Reload) {
	m.statusErr = false
	switch r.Kind {
	case app.ReloadReplace:
		m.criticCursor = 0
		m.status = fmt.Sprintf("%d reviews by %s", r.Count, m.critic.Critic().DisplayName)
	case app.ReloadAppend:
		m.status = fmt.Sprintf("%d reviews by %s", r.Count, m.critic.Critic().DisplayName)
	case app.ReloadError:
		m.status = r.Message()
		m.statusErr = true
		log.Warn().Err(r.Err).Str("critic", m.critic.Critic().DisplayName).Msg("load failed")
	}
	m.criticCursor = clamp(m.criticCursor, m.critic.Len())
}

func countStatus(n int, c app.Category) string {
	return fmt.Sprintf("%d %s", n, c)
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
