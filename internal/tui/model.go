package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"phodata/internal/domain"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseCounting Phase = iota
	PhaseExporting
	PhaseDone
	PhaseError
)

// Messages for the TUI
type (
	CountedMsg struct {
		Total int
	}
	ExportProgressMsg struct {
		Done  int
		Total int
		File  string
	}
	ExportDoneMsg struct {
		Summary domain.ExportSummary
	}
	ErrorMsg struct {
		Err error
	}
	tickMsg time.Time
)

// Config for the TUI
type Config struct {
	Root    string
	Output  string
	Format  domain.Format
	Verbose bool
}

const maxSkipLines = 4

// Model is the main TUI model
type Model struct {
	config      Config
	Phase       Phase
	Summary     domain.ExportSummary
	spinner     spinner.Model
	progress    progress.Model
	done        int
	total       int
	currentFile string
	Err         error
	Quitting    bool
	width       int
	height      int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseCounting,
		spinner:  s,
		progress: p,
		width:    80,
		height:   24,
	}
}

// Init starts the spinner. Progress arrives from outside the program as
// CountedMsg, ExportProgressMsg and finally ExportDoneMsg or ErrorMsg.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Finished reports whether the export reached a terminal phase.
func (m Model) Finished() bool {
	return m.Phase == PhaseDone || m.Phase == PhaseError
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			if m.Finished() {
				return m, tea.Quit
			}
		}

	case CountedMsg:
		m.total = msg.Total
		m.Phase = PhaseExporting
		return m, tickCmd()

	case ExportProgressMsg:
		m.done = msg.Done
		m.total = msg.Total
		m.currentFile = msg.File
		return m, nil

	case ExportDoneMsg:
		m.Phase = PhaseDone
		m.Summary = msg.Summary
		m.done = m.total
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if !m.Finished() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseExporting {
			var cmds []tea.Cmd
			if m.total > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.done)/float64(m.total)))
			}
			cmds = append(cmds, tickCmd())
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	sections := []string{m.header(), ""}
	switch m.Phase {
	case PhaseCounting:
		sections = append(sections, fmt.Sprintf("%s Looking for photos...", m.spinner.View()))
	case PhaseExporting:
		sections = append(sections, m.exportView())
	case PhaseDone:
		sections = append(sections, m.summaryView())
	case PhaseError:
		sections = append(sections, m.errorView())
	}
	sections = append(sections, hintStyle.Render(m.hint()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) header() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(glyphCamera+" phodata"),
		subtitleStyle.Render("EXIF metadata to "+string(m.config.Format)),
		"",
		metaStyle.Render(fmt.Sprintf("%s Root:   %s", glyphFolder, shortenPath(m.config.Root))),
		metaStyle.Render(fmt.Sprintf("%s Output: %s", glyphTable, shortenPath(m.config.Output))),
	)
}

func (m Model) fraction() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m Model) exportView() string {
	lines := []string{
		headingStyle.Render("Reading EXIF"),
		fmt.Sprintf("  %s Extracting...", m.spinner.View()),
		"",
		"  " + m.progress.ViewAs(m.fraction()),
		fmt.Sprintf("  %s %s",
			counterStyle.Render(fmt.Sprintf("%d/%d photos", m.done, m.total)),
			metaStyle.Render(fmt.Sprintf("(%.0f%%)", m.fraction()*100)),
		),
	}
	if m.currentFile != "" {
		lines = append(lines, "", fmt.Sprintf("  %s %s", glyphArrow, currentStyle.Render(m.currentFile)))
	}
	return strings.Join(lines, "\n")
}

func stat(label, value string) string {
	return fmt.Sprintf("  %s  %s", labelStyle.Render(label), value)
}

func (m Model) summaryView() string {
	s := m.Summary
	lines := []string{
		headingStyle.Render("Export Complete"),
		fmt.Sprintf("  %s %s", okStyle.Render(glyphOK), okStyle.Render("Dataset written successfully!")),
		"",
		stat("Rows written:", valueStyle.Render(fmt.Sprintf("%d", s.Written))),
		stat("With GPS:", geoStyle.Render(fmt.Sprintf("%s %d", glyphGPS, s.WithGPS))),
		stat("Elapsed:", metaStyle.Render(s.Elapsed.Round(time.Millisecond).String())),
	}

	if len(s.Skipped) > 0 {
		lines = append(lines, stat("Skipped:", skipStyle.Render(fmt.Sprintf("%s %d", glyphSkip, len(s.Skipped)))))
		for i, skipped := range s.Skipped {
			if i == maxSkipLines && !m.config.Verbose {
				lines = append(lines, fmt.Sprintf("    ... and %d more", len(s.Skipped)-maxSkipLines))
				break
			}
			lines = append(lines, fmt.Sprintf("    %s %s", skipStyle.Render(glyphSkip), skipPath.Render(shortenPath(skipped.Path))))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) errorView() string {
	return failBoxStyle.Render(fmt.Sprintf("%s %s", failStyle.Render(glyphFail), failStyle.Render("Error: "+m.Err.Error())))
}

func (m Model) hint() string {
	switch m.Phase {
	case PhaseDone:
		return "Press Enter to exit"
	case PhaseError:
		return "Press Enter or q to exit"
	default:
		return "Press q to cancel"
	}
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
