package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/flowkeys/internal/engine"
	"github.com/verte-zerg/flowkeys/internal/generator"
	"github.com/verte-zerg/flowkeys/internal/store"
)

// Durations offered by the duration selector, in seconds.
var Durations = []int{15, 30, 60, 120}

// PrefStore persists UI preferences.
type PrefStore interface {
	SetPref(ctx context.Context, key, value string) error
}

// Options configures a Model.
type Options struct {
	Pool     []string
	Count    int
	Duration int
	Gen      *generator.Generator
	GenOpts  generator.Options
	Theme    string
	Prefs    PrefStore
	Logger   *zap.Logger
}

type tickMsg struct {
	id engine.TimerID
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	opts   Options
	engine *engine.Engine
	input  textinput.Model
	keys   keyMap
	help   help.Model
	theme  theme
	logger *zap.Logger

	width   int
	height  int
	focused bool

	duration  int
	sessionID string
	scheduled engine.TimerID
	samples   []float64

	lastResult *engine.Stats
}

// NewModel constructs a typing TUI model and deals the first test.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gen == nil {
		opts.Gen = generator.New()
	}
	if opts.Theme == "" {
		opts.Theme = DetectTheme()
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 0
	input.Focus()

	m := &Model{
		opts:     opts,
		input:    input,
		keys:     defaultKeyMap(),
		help:     help.New(),
		theme:    newTheme(opts.Theme),
		focused:  true,
		duration: opts.Duration,
	}
	m.engine = engine.New(m.onFinish)
	m.applyHelpStyles()
	m.newTest()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// LastResult returns the most recent finished result, if any.
func (m *Model) LastResult() (engine.Stats, bool) {
	if m.lastResult == nil {
		return engine.Stats{}, false
	}
	return *m.lastResult, true
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.FocusMsg:
		m.focused = true
		return m, nil
	case tea.BlurMsg:
		m.focused = false
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		// Clipboard pastes arrive as internal textinput messages.
		return m, m.updateInput(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.syncKeyStates()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reset), key.Matches(msg, m.keys.Restart):
		m.newTest()
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Duration):
		m.cycleDuration()
		return m, nil
	}
	if m.engine.Status() == engine.StatusFinished {
		return m, nil
	}
	if msg.Type == tea.KeySpace {
		m.engine.OnKeystroke(engine.Separator)
		m.syncInput()
		return m, m.armTimer()
	}
	return m, m.updateInput(msg)
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	if m.engine.Status() == engine.StatusFinished {
		return nil
	}
	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == prev {
		return cmd
	}
	m.engine.OnKeystroke(m.input.Value())
	m.syncInput()
	return tea.Batch(cmd, m.armTimer())
}

// syncInput keeps the input buffer equal to the engine's view of the
// current word, undoing rejected input and clearing after an advance.
func (m *Model) syncInput() {
	typed := m.engine.Snapshot().CurrentTyped
	if m.input.Value() != typed {
		m.input.SetValue(typed)
		m.input.CursorEnd()
	}
}

func (m *Model) armTimer() tea.Cmd {
	id, armed := m.engine.ActiveTimer()
	if !armed || id == m.scheduled {
		return nil
	}
	m.scheduled = id
	m.logger.Info("session started", zap.Int("duration", m.duration))
	return tickCmd(id)
}

func tickCmd(id engine.TimerID) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	before := m.engine.Snapshot().TimeLeft
	armed := m.engine.Tick(msg.id)
	if m.engine.Snapshot().TimeLeft != before {
		m.samples = append(m.samples, float64(m.engine.LiveStats().WPM))
	}
	if !armed {
		return nil
	}
	return tickCmd(msg.id)
}

func (m *Model) onFinish(s engine.Stats) {
	result := s
	m.lastResult = &result
	m.logger.Info("session finished",
		zap.Int("wpm", s.WPM),
		zap.Int("accuracy", s.Accuracy),
		zap.Int("time", s.Time),
		zap.Int("correct", s.CorrectChars),
		zap.Int("incorrect", s.IncorrectChars),
		zap.Int("missed", s.MissedChars),
	)
}

func (m *Model) newTest() {
	words := m.opts.Gen.Generate(m.opts.Pool, m.opts.Count, m.opts.GenOpts)
	m.engine.Reset(words, m.duration)
	m.input.SetValue("")
	m.samples = nil
	m.scheduled = 0
	m.sessionID = uuid.NewString()
	m.logger = m.opts.Logger.With(zap.String("session_id", m.sessionID))
	m.logger.Debug("session reset", zap.Int("words", len(words)), zap.Int("duration", m.duration))
}

func (m *Model) cycleDuration() {
	next := Durations[0]
	for i, d := range Durations {
		if d == m.duration {
			next = Durations[(i+1)%len(Durations)]
			break
		}
	}
	m.duration = next
	m.savePref(store.PrefDuration, strconv.Itoa(next))
	m.newTest()
}

func (m *Model) toggleTheme() {
	m.theme = m.theme.toggled()
	m.applyHelpStyles()
	m.savePref(store.PrefTheme, m.theme.name)
}

func (m *Model) savePref(name, value string) {
	if m.opts.Prefs == nil {
		return
	}
	if err := m.opts.Prefs.SetPref(context.Background(), name, value); err != nil {
		m.logger.Warn("failed to save preference", zap.String("key", name), zap.Error(err))
	}
}

func (m *Model) syncKeyStates() {
	status := m.engine.Status()
	m.keys.Duration.SetEnabled(status != engine.StatusRunning)
	m.keys.Restart.SetEnabled(status == engine.StatusFinished)
}

func (m *Model) applyHelpStyles() {
	m.help.Styles.ShortKey = m.theme.accent.UnsetBold()
	m.help.Styles.ShortDesc = m.theme.muted
	m.help.Styles.ShortSeparator = m.theme.muted
	m.help.Styles.FullKey = m.help.Styles.ShortKey
	m.help.Styles.FullDesc = m.help.Styles.ShortDesc
	m.help.Styles.FullSeparator = m.help.Styles.ShortSeparator
}

// View implements tea.Model.
func (m *Model) View() string {
	m.syncKeyStates()
	snap := m.engine.Snapshot()
	if snap.Status == engine.StatusFinished {
		return m.place(m.renderResults())
	}
	if len(snap.Words) == 0 {
		return ""
	}
	runes := buildStyledRunes(snap, m.theme, m.focused)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(runes)
	}
	contentWidth := max(1, int(float64(m.width)*0.70))
	words := lipgloss.NewStyle().Width(contentWidth).Render(wrapStyledRunes(runes, contentWidth))
	parts := []string{m.renderHeader(snap, contentWidth), "", words}
	if !m.focused {
		parts = append(parts, "", m.theme.notice.Render("focus lost · click to resume"))
	}
	return m.place(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) place(content string) string {
	footer := m.help.View(m.keys)
	if m.width == 0 || m.height < 3 {
		return content + "\n" + footer
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderHeader(snap engine.Snapshot, width int) string {
	segments := []string{m.theme.timer.Render(strconv.Itoa(snap.TimeLeft))}
	if snap.Status == engine.StatusRunning {
		live := m.engine.LiveStats()
		segments = append(segments,
			m.theme.accent.Render(fmt.Sprintf("%d wpm", live.WPM)),
			m.theme.muted.Render(fmt.Sprintf("%d%% acc", live.Accuracy)),
		)
	}
	left := strings.Join(segments, "   ")
	right := m.renderDurations()
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, strings.Repeat(" ", gap), right)
}

func (m *Model) renderDurations() string {
	parts := make([]string, 0, len(Durations))
	for _, d := range Durations {
		label := fmt.Sprintf("%ds", d)
		if d == m.duration {
			parts = append(parts, m.theme.selected.Render(label))
			continue
		}
		parts = append(parts, m.theme.muted.Padding(1, 1).Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
