package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var refreshDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

type refreshDoneMsg struct {
	count int
	err   error
}

// refreshSpinnerModel tracks one refresh of the duplicate groups. previous is
// the stored group count before the refresh, used for the summary line.
type refreshSpinnerModel struct {
	spinner  spinner.Model
	label    string
	previous int
	fetch    tea.Cmd
	started  time.Time
	finished time.Time
	now      func() time.Time
	count    int
	err      error
	done     bool
}

func newRefreshSpinnerModel(label string, previous int, fetch tea.Cmd, now func() time.Time) refreshSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return refreshSpinnerModel{
		spinner:  s,
		label:    label,
		previous: previous,
		fetch:    fetch,
		started:  now(),
		now:      now,
	}
}

func (m refreshSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m refreshSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case refreshDoneMsg:
		m.done = true
		m.finished = m.now()
		m.count = msg.count
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m refreshSpinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return ""
		}
		summary := fmt.Sprintf("%d duplicate groups, %s", m.count, describeGroupDelta(m.previous, m.count))
		return refreshDoneStyle.Render("✓") + " " + summary + " (" + m.finished.Sub(m.started).Truncate(time.Millisecond).String() + ")\n"
	}

	elapsed := m.now().Sub(m.started)
	if elapsed < 2*time.Second {
		return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	}
	return fmt.Sprintf("%s %s %s", m.spinner.View(), m.label, elapsed.Truncate(time.Second))
}

func describeGroupDelta(previous int, count int) string {
	switch {
	case count > previous:
		return fmt.Sprintf("%d more than before", count-previous)
	case count < previous:
		return fmt.Sprintf("%d fewer than before", previous-count)
	default:
		return "unchanged"
	}
}

// runRefreshSpinner runs fetch while drawing a spinner on output and leaves a
// summary line comparing the fetched group count with previous.
func runRefreshSpinner(ctx context.Context, output io.Writer, label string, previous int, now func() time.Time, fetch func(context.Context) (int, error)) (int, error) {
	fetchCmd := func() tea.Msg {
		count, err := fetch(ctx)
		return refreshDoneMsg{count: count, err: err}
	}

	p := tea.NewProgram(
		newRefreshSpinnerModel(label, previous, fetchCmd, now),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	result, ok := finalModel.(refreshSpinnerModel)
	if !ok {
		return 0, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.count, result.err
}
