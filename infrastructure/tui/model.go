// Package tui renders the interactive rating console.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/soumenkm/TranslateApp/internal/domain"
)

// RaterPort is the TUI-facing subset of the rating service.
type RaterPort interface {
	Session() *domain.Session
	ExampleCount() int
	Example(index int) (domain.Example, error)
	Scores(set domain.ExampleRatingSet) (y1, y2 float64)
	Averages() (avgY1, avgY2 float64, rated int)
	Submit(ctx context.Context) (*domain.ValidatedSubmission, error)
}

// Model is the Bubble Tea model for the rating console.
// All session mutations happen inside Update, which Bubble Tea runs
// on a single goroutine, so the session never sees concurrent writers.
type Model struct {
	rater       RaterPort
	dims        []domain.QualityDimension
	username    textinput.Model
	viewport    viewport.Model
	cursor      int
	focus       domain.Candidate
	editingName bool
	status      string
	statusErr   bool
	ready       bool
	labelWidth  int
}

// New creates a new rating console model.
func New(rater RaterPort, dims []domain.QualityDimension) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter your name"
	ti.Focus()
	ti.CharLimit = 0

	labelWidth := 0
	for _, dim := range dims {
		if len(dim.Name) > labelWidth {
			labelWidth = len(dim.Name)
		}
	}

	return Model{
		rater:       rater,
		dims:        dims,
		username:    ti,
		viewport:    viewport.New(0, 0),
		focus:       domain.CandidateY1,
		editingName: true,
		status:      fmt.Sprintf("Loaded %d examples. Enter your name, then press tab to rate.", rater.ExampleCount()),
		labelWidth:  labelWidth,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, eh := exampleBoxStyle.GetFrameSize()
		// header + name box + grid + scores + status + help + spacers
		reserved := 1 + 3 + len(m.dims) + 1 + 1 + 1 + 3 + eh
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderExample())
		return m, nil

	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}

		if m.editingName {
			switch msg.String() {
			case "tab", "enter":
				m.blurName()
				return m, nil
			default:
				var cmd tea.Cmd
				m.username, cmd = m.username.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.editingName = true
			m.username.Focus()
			m.setStatus("Editing name. Press tab to return to rating.")
			return m, textinput.Blink
		case "left", "h":
			m.focus = domain.CandidateY1
			return m, nil
		case "right", "l":
			m.focus = domain.CandidateY2
			return m, nil
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.dims)-1 {
				m.cursor++
			}
			return m, nil
		case "+", "=":
			m.adjustRating(1)
			return m, nil
		case "-", "_":
			m.adjustRating(-1)
			return m, nil
		case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
			value := int(msg.String()[0] - '0')
			if value == 0 {
				value = 10
			}
			m.setRating(value)
			return m, nil
		case "enter", "c":
			m.commitCurrent()
			return m, nil
		case "n":
			m.rater.Session().GoNext()
			m.cursor = 0
			m.focus = domain.CandidateY1
			m.viewport.SetContent(m.renderExample())
			return m, nil
		case "p":
			m.rater.Session().GoPrevious()
			m.cursor = 0
			m.focus = domain.CandidateY1
			m.viewport.SetContent(m.renderExample())
			return m, nil
		case "s":
			m.submitAll()
			return m, nil
		case "R":
			m.rater.Session().Reset()
			m.viewport.SetContent(m.renderExample())
			m.setStatus("Session reset. All ratings cleared.")
			return m, nil
		}
	}

	return m, nil
}

func (m *Model) blurName() {
	m.editingName = false
	m.username.Blur()
	m.rater.Session().SetUsername(m.username.Value())
	if strings.TrimSpace(m.username.Value()) == "" {
		m.setStatus("No name yet. Ratings can be staged, but submitting needs a name.")
		return
	}
	m.setStatus(fmt.Sprintf("Rating as %s.", strings.TrimSpace(m.username.Value())))
}

// displayedRating returns the value shown for a dimension: the staged
// pair when one exists, otherwise the range midpoint placeholder.
func (m Model) displayedRating(index int, dim domain.QualityDimension) (domain.Rating, bool) {
	staged := m.rater.Session().Staged(index)
	if rating, ok := staged[dim.Name]; ok {
		return rating, true
	}
	mid := dim.Range.Midpoint()
	return domain.Rating{Y1: mid, Y2: mid}, false
}

func (m *Model) adjustRating(delta int) {
	dim := m.dims[m.cursor]
	index := m.rater.Session().CurrentIndex()
	current, _ := m.displayedRating(index, dim)
	m.stage(index, dim, dim.Range.Clamp(current.Value(m.focus)+delta), current)
}

func (m *Model) setRating(value int) {
	dim := m.dims[m.cursor]
	index := m.rater.Session().CurrentIndex()
	current, _ := m.displayedRating(index, dim)
	m.stage(index, dim, dim.Range.Clamp(value), current)
}

func (m *Model) stage(index int, dim domain.QualityDimension, value int, current domain.Rating) {
	rating := current
	if m.focus == domain.CandidateY1 {
		rating.Y1 = value
	} else {
		rating.Y2 = value
	}
	if err := m.rater.Session().StageRating(index, dim.Name, rating); err != nil {
		m.setError(err.Error())
		return
	}
	m.statusErr = false
}

func (m *Model) commitCurrent() {
	index := m.rater.Session().CurrentIndex()
	set, err := m.rater.Session().CommitExample(index)
	if err != nil {
		m.setError(err.Error())
		return
	}
	y1, y2 := m.rater.Scores(set)
	m.setStatus(fmt.Sprintf("Ratings submitted for Example %d! Weighted Scores: y1=%.2f, y2=%.2f", index+1, y1, y2))
}

func (m *Model) submitAll() {
	m.rater.Session().SetUsername(m.username.Value())

	submission, err := m.rater.Submit(context.Background())
	switch {
	case err == nil:
		avgY1, avgY2, rated := m.rater.Averages()
		m.setStatus(fmt.Sprintf(
			"All ratings (%d examples) have been saved to the database for %s! Average Weighted Scores: y1=%.2f, y2=%.2f",
			rated, submission.Username, avgY1, avgY2))
	case errors.Is(err, domain.ErrMissingUsername):
		m.setError("Please enter your name above before submitting all ratings.")
	case errors.Is(err, domain.ErrEmptySubmission):
		m.setError("No ratings have been submitted yet. Nothing to save.")
	default:
		log.Printf("failed to save ratings: %v", err)
		m.setError("Failed to save ratings. See the log for details.")
	}
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

// View renders the console layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := titleStyle.Render("Translation Quality Rating App")
	name := nameBoxStyle.Render("Enter your name: " + m.username.View())
	example := exampleBoxStyle.Render(m.viewport.View())
	grid := m.renderGrid()
	scores := m.renderScores()

	status := statusStyle.Render(m.status)
	if m.statusErr {
		status = errorStyle.Render(m.status)
	}
	help := helpStyle.Render(
		"tab name · arrows move · +/- adjust · 1-9,0 set · enter save example · n/p navigate · s submit all · R reset · q quit")

	return header + "\n" + name + "\n" + example + "\n" + grid + "\n" + scores + "\n" + status + "\n" + help
}

func (m Model) renderExample() string {
	index := m.rater.Session().CurrentIndex()
	example, err := m.rater.Example(index)
	if err != nil {
		return err.Error()
	}

	committed := ""
	if _, ok := m.rater.Session().Committed(index); ok {
		committed = "  ✓ saved"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Example %d of %d%s\n\n", index+1, m.rater.ExampleCount(), committed)
	b.WriteString(labelStyle.Render("Original Text (x):") + "\n" + example.Source + "\n\n")
	b.WriteString(labelStyle.Render("Translation y1:") + "\n" + example.Y1 + "\n\n")
	b.WriteString(labelStyle.Render("Translation y2:") + "\n" + example.Y2 + "\n")
	return b.String()
}

func (m Model) renderGrid() string {
	index := m.rater.Session().CurrentIndex()

	var rows []string
	for i, dim := range m.dims {
		rating, staged := m.displayedRating(index, dim)

		marker := "  "
		if i == m.cursor {
			marker = "> "
		}

		label := fmt.Sprintf("%-*s  w=%.2f", m.labelWidth, dim.Name, dim.Weight)
		y1 := m.renderCell(domain.CandidateY1, rating.Y1, i == m.cursor, staged)
		y2 := m.renderCell(domain.CandidateY2, rating.Y2, i == m.cursor, staged)

		row := fmt.Sprintf("%s%s   y1: %s   y2: %s", marker, label, y1, y2)
		if i == m.cursor {
			row = cursorRowStyle.Render(row)
		}
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderCell(candidate domain.Candidate, value int, onCursor, staged bool) string {
	cell := fmt.Sprintf("%2d", value)
	if onCursor && candidate == m.focus {
		return focusedCellStyle.Render(cell)
	}
	if !staged {
		return untouchedStyle.Render(cell)
	}
	return cell
}

func (m Model) renderScores() string {
	index := m.rater.Session().CurrentIndex()
	staged := m.rater.Session().Staged(index)
	if len(staged) == 0 {
		return helpStyle.Render("No ratings staged for this example yet.")
	}
	y1, y2 := m.rater.Scores(staged)
	return fmt.Sprintf("Staged weighted scores: y1=%.2f  y2=%.2f", y1, y2)
}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	nameBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	exampleBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle       = lipgloss.NewStyle().Bold(true)
	cursorRowStyle   = lipgloss.NewStyle().Bold(true)
	focusedCellStyle = lipgloss.NewStyle().Reverse(true)
	untouchedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
