package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"nyt_movies/internal/app"
	"nyt_movies/internal/domain"
)

const appName = "NYT Movie Reviews"

func (m Model) View() string {
	var body string
	var keys help.KeyMap = browseHelp{m.keys}
	switch m.mode {
	case modeCritic:
		body = m.criticView()
		keys = detailHelp{m.keys}
	case modeSearch, modeDate:
		body = m.input.View() + "\n" + m.listView(m.listRows()-2)
		keys = inputHelp{m.keys}
	default:
		body = m.listView(m.listRows())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.statusView(),
		m.help.View(keys),
	)
}

func (m Model) headerView() string {
	tabs := make([]string, 0, 2)
	for _, c := range []app.Category{app.CategoryReviews, app.CategoryCritics} {
		style := tabStyle
		if c == m.browser.Category() {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(strings.ToUpper(c.String()[:1])+c.String()[1:]))
	}

	var filters []string
	if q := m.browser.Query(); q != "" {
		filters = append(filters, fmt.Sprintf("query %q", q))
	}
	if since, ok := m.browser.Since(); ok && m.browser.Category() == app.CategoryReviews {
		filters = append(filters, "since "+since.Format(dateInputFormat))
	}

	line := titleStyle.Render(appName) + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if len(filters) > 0 {
		line += "  " + mutedStyle.Render(strings.Join(filters, ", "))
	}
	return line
}

// listRows is how many list lines fit between header and footer.
func (m Model) listRows() int {
	if n := m.height - 6; n > 3 {
		return n
	}
	return 3
}

func (m Model) listView(rows int) string {
	if m.switching {
		return m.spinner.View() + " " + mutedStyle.Render("loading")
	}
	var lines []string
	if m.browser.Category() == app.CategoryCritics {
		for _, c := range m.browser.Critics() {
			lines = append(lines, criticLine(c))
		}
	} else {
		for _, r := range m.browser.Reviews() {
			lines = append(lines, reviewLine(r))
		}
	}
	return window(lines, m.cursor, rows, m.browser.HasMore())
}

func (m Model) criticView() string {
	c := m.critic.Critic()
	head := titleStyle.Render(c.DisplayName)
	if c.Status != "" {
		head += "  " + mutedStyle.Render(string(c.Status))
	}
	var b strings.Builder
	b.WriteString(head)
	if bio := strings.TrimSpace(c.Bio); bio != "" {
		w := m.width - 4
		if w < 20 {
			w = 76
		}
		b.WriteString("\n" + boxStyle.Width(w).Render(bio))
	}

	var lines []string
	for _, r := range m.critic.Reviews() {
		lines = append(lines, reviewLine(r))
	}
	b.WriteString("\n" + window(lines, m.criticCursor, m.listRows()-4, m.critic.HasMore()))
	return b.String()
}

func (m Model) statusView() string {
	if m.statusErr {
		return statusStyle.Render(errorStyle.Render(m.status))
	}
	return statusStyle.Render(m.status)
}

// window renders the slice of lines around cursor that fits in rows.
func window(lines []string, cursor, rows int, more bool) string {
	if len(lines) == 0 {
		return mutedStyle.Render("  nothing to show")
	}
	if rows < 1 {
		rows = 1
	}
	start := 0
	if cursor >= rows {
		start = cursor - rows + 1
	}
	end := start + rows
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == cursor {
			b.WriteString(cursorStyle.Render("> " + lines[i]))
		} else {
			b.WriteString("  " + lines[i])
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	if more && end == len(lines) {
		b.WriteString("\n" + mutedStyle.Render("  …"))
	}
	return b.String()
}

func reviewLine(r domain.Review) string {
	pick := "  "
	if r.IsCriticsPick() {
		pick = pickStyle.Render("★ ")
	}
	title := r.DisplayTitle
	if title == "" {
		title = r.Headline
	}
	line := pick + title
	if r.MPAARating != "" {
		line += " (" + r.MPAARating + ")"
	}
	meta := r.PublicationDate
	if r.Byline != "" {
		meta += " · " + r.Byline
	}
	return line + "  " + mutedStyle.Render(meta)
}

func criticLine(c domain.Critic) string {
	line := c.DisplayName
	if c.Status != "" {
		line += "  " + mutedStyle.Render(string(c.Status))
	}
	return line
}
