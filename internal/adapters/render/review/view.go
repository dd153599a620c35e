package review

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now        time.Time
	StaleAfter time.Duration
	FetchedAt  time.Time
}

// Page is one group as shown by the review command.
type Page struct {
	Group    domain.DuplicateGroup
	Position int
	Total    int
	Prev     domain.GroupID
	Next     domain.GroupID
	// AssetURL links an asset to the library web UI. Nil disables links.
	AssetURL func(domain.AssetID) string
}

func renderPage(page Page, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Duplicate Review"),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.header.Render(fmt.Sprintf("group %d of %d ", page.Position+1, page.Total)),
			renderProgressBar(page.Position+1, page.Total, 24, s),
		),
	}
	if line := fetchedLine(opts, s); line != "" {
		lines = append(lines, line)
	}

	parts := []string{s.group.Render(string(page.Group.ID))}
	for i, asset := range page.Group.Assets {
		parts = append(parts, assetLine(i, asset, page.AssetURL, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))

	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, hintLines(page, s)...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func assetLine(index int, asset domain.AssetID, assetURL func(domain.AssetID) string, s styles) string {
	marker := s.asset.Render(fmt.Sprintf("  %d. ", index+1))
	if index == 0 {
		marker = s.keep.Render("* 1. ")
	}

	line := marker + s.asset.Render(string(asset))
	if assetURL != nil {
		line += " " + s.link.Render(assetURL(asset))
	}
	return line
}

func hintLines(page Page, s styles) []string {
	id := string(page.Group.ID)
	hints := []string{
		s.hint.Render(fmt.Sprintf("resolve: dupes groups resolve %s [--keep ASSET]", id)),
		s.hint.Render(fmt.Sprintf("dismiss: dupes groups dismiss %s", id)),
	}
	if page.Prev != "" {
		hints = append(hints, s.hint.Render(fmt.Sprintf("prev:    dupes review %s", page.Prev)))
	}
	if page.Next != "" {
		hints = append(hints, s.hint.Render(fmt.Sprintf("next:    dupes review %s", page.Next)))
	}
	return hints
}

func renderList(groups []domain.DuplicateGroup, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Duplicate Groups"),
		s.header.Render(fmt.Sprintf("groups: %d, assets: %d", len(groups), countAssets(groups))),
	}
	if line := fetchedLine(opts, s); line != "" {
		lines = append(lines, line)
	}

	if len(groups) == 0 {
		lines = append(lines, s.empty.Render("No duplicate groups. Run `dupes groups refresh` to fetch them."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([]string, 0, len(groups))
	width := len(fmt.Sprint(len(groups)))
	for i, group := range groups {
		rows = append(rows, fmt.Sprintf("%s %s %s",
			s.header.Render(fmt.Sprintf("%*d", width, i)),
			s.group.Render(string(group.ID)),
			s.asset.Render(fmt.Sprintf("(%d assets)", len(group.Assets))),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func fetchedLine(opts RenderOptions, s styles) string {
	if opts.FetchedAt.IsZero() {
		return ""
	}

	line := s.header.Render("fetched " + formatFetched(opts.FetchedAt, opts.Now))
	if isStale(opts.FetchedAt, opts.Now, opts.StaleAfter) {
		line += " " + s.warning.Render("[stale]")
	}
	return line
}

func isStale(fetchedAt, now time.Time, staleAfter time.Duration) bool {
	if now.IsZero() || staleAfter <= 0 {
		return false
	}
	return now.Sub(fetchedAt) > staleAfter
}

func formatFetched(fetchedAt, now time.Time) string {
	if now.IsZero() {
		return fetchedAt.Format(time.RFC3339)
	}

	age := now.Sub(fetchedAt)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return plural(int(age.Minutes()), "minute") + " ago"
	case age < 24*time.Hour:
		return plural(int(age.Hours()), "hour") + " ago"
	default:
		return plural(int(math.Floor(age.Hours()/24)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func countAssets(groups []domain.DuplicateGroup) int {
	total := 0
	for _, group := range groups {
		total += len(group.Assets)
	}
	return total
}

func renderProgressBar(done, total, width int, s styles) string {
	if width <= 0 || total <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * float64(done) / float64(total)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}
