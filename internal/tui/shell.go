// Package tui is the terminal presentation shell: it walks the deck and
// mounts the view each slide kind asks for.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gravdeck/internal/deck"
	"github.com/san-kum/gravdeck/internal/qa"
	"github.com/san-kum/gravdeck/internal/spacetime"
	"github.com/san-kum/gravdeck/internal/viz"
	"go.uber.org/zap"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	progressRows = 1
	cardBorder   = 1
	cardPadX     = 3
	cardPadY     = 1

	maxCanvasRows = 16
	minCanvasRows = 6
	legendRows    = 1
	chartInset    = 10
)

const (
	startLabel = "ابدأ العرض الاستكشافي"
	prevLabel  = "→ السابق"
	nextLabel  = "التالي ←"
	footerHint = "استخدم الأسهم أو المسافة للتنقل بين الشرائح"
)

type Options struct {
	Deck      *deck.Deck
	Generator qa.Generator
	Model     string
	Persona   string
	Grid      spacetime.Params
	Theme     viz.Theme
	Logger    *zap.Logger
}

type Model struct {
	opts          Options
	deck          *deck.Deck
	styles        viz.Styles
	log           *zap.Logger
	width, height int

	visual *visualView
	chat   *chatView
}

func New(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Model{
		opts:   opts,
		deck:   opts.Deck,
		styles: viz.NewStyles(opts.Theme),
		log:    log,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.mount()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case replyMsg:
		if m.chat == nil || !m.chat.resolve(msg, m.styles) {
			m.log.Debug("dropped reply for unmounted panel",
				zap.String("panel_id", msg.PanelID.String()),
				zap.String("request_id", msg.RequestID.String()))
		}
		return m, nil
	case spinner.TickMsg:
		if m.chat != nil && m.chat.panel.Awaiting() {
			var cmd tea.Cmd
			m.chat.spin, cmd = m.chat.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.chat != nil {
		var cmd tea.Cmd
		m.chat.input, cmd = m.chat.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.chat != nil && m.chat.input.Focused() {
		return m.chatKey(msg)
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "right", " ":
		if m.deck.Advance() {
			return m.mount()
		}
	case "left":
		if m.deck.Retreat() {
			return m.mount()
		}
	case "enter":
		switch {
		case m.deck.Current().Kind == deck.KindIntro:
			if m.deck.Advance() {
				return m.mount()
			}
		case m.chat != nil:
			return m.chat.focus()
		}
	case "i":
		if m.chat != nil {
			return m.chat.focus()
		}
	case "t":
		m.styles = viz.NewStyles(viz.NextTheme(m.styles.Theme))
		if m.chat != nil {
			m.chat.refresh(m.styles)
		}
	case "m":
		if m.visual != nil {
			m.visual.mesh = !m.visual.mesh
		}
	case "f":
		if m.visual != nil {
			m.visual.chart = !m.visual.chart
			m.layoutVisual()
		}
	}
	return nil
}

func (m *Model) chatKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.chat.input.Blur()
		return nil
	case "enter":
		return m.chat.submit(m.styles)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.chat.vp, cmd = m.chat.vp.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	m.chat.input, cmd = m.chat.input.Update(msg)
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.visual == nil || msg.Action != tea.MouseActionMotion {
		return
	}
	col, row := m.canvasOrigin()
	m.visual.pointer(msg.X-col, msg.Y-row)
}

// mount brings the mounted views in line with the current slide. Each slide
// change is a fresh mount: the grid is rebuilt and the transcript starts empty.
func (m *Model) mount() tea.Cmd {
	var cmds []tea.Cmd
	s := m.deck.Current()

	if m.visual != nil && (s.Kind != deck.KindVisual || m.visual.slideID != s.ID) {
		m.visual = nil
		cmds = append(cmds, tea.DisableMouse)
	}
	if m.chat != nil && (s.Kind != deck.KindQA || m.chat.slideID != s.ID) {
		m.log.Debug("unmounting q&a panel", zap.String("panel_id", m.chat.panel.ID().String()))
		m.chat = nil
	}

	switch s.Kind {
	case deck.KindVisual:
		if m.visual == nil {
			rows, _ := m.canvasLayout(false)
			m.visual = newVisualView(s.ID, m.opts.Grid, m.innerWidth(), rows)
			cmds = append(cmds, tea.EnableMouseAllMotion)
		}
	case deck.KindQA:
		if m.chat == nil {
			panel := qa.NewPanel(m.opts.Generator, qa.Options{
				Model:   m.opts.Model,
				Persona: m.opts.Persona,
				Logger:  m.log,
			})
			m.chat = newChatView(s.ID, panel, m.innerWidth(), m.transcriptRows(), m.styles)
			cmds = append(cmds, m.chat.focus())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) resize() {
	if m.visual != nil {
		m.layoutVisual()
	}
	if m.chat != nil {
		m.chat.resize(m.innerWidth(), m.transcriptRows(), m.styles)
	}
}

func (m *Model) innerWidth() int {
	w := m.width - 2*cardBorder - 2*cardPadX
	if w < 20 {
		w = 20
	}
	return w
}

// layoutVisual fits the mounted grid to the terminal, rebuilding it only
// when the surface size changes.
func (m *Model) layoutVisual() {
	rows, shown := m.canvasLayout(m.visual.chart)
	if m.visual.surface.Cols != m.innerWidth() || m.visual.surface.Rows != rows {
		m.visual.resize(m.innerWidth(), rows)
	}
	m.visual.chartShown = shown
}

// canvasLayout gives the canvas what the terminal leaves after the chrome
// around it. The chart is dropped when it would squeeze the canvas below
// minCanvasRows.
func (m *Model) canvasLayout(chart bool) (rows int, chartShown bool) {
	if chart {
		if rows = m.height - m.visualChrome(true); rows >= minCanvasRows {
			return min(rows, maxCanvasRows), true
		}
	}
	return clamp(m.height-m.visualChrome(false), minCanvasRows, maxCanvasRows), false
}

// visualChrome is the screen height of everything on the spacetime slide
// except the canvas itself.
func (m *Model) visualChrome(chart bool) int {
	h := progressRows + 2*(cardBorder+cardPadY) +
		lipgloss.Height(m.slidePrefix(m.deck.Current())) +
		legendRows + 1 + lipgloss.Height(m.viewNav()) +
		lipgloss.Height(m.viewFooter())
	if chart {
		h += 1 + lipgloss.Height(viz.FalloffChart(m.opts.Grid, m.innerWidth()-chartInset, m.styles))
	}
	return h
}

func (m *Model) transcriptRows() int {
	return clamp(m.height-22, 5, 18)
}

// canvasOrigin is the screen cell of the canvas's top-left corner. A frame
// taller than the terminal loses its top lines, so the origin moves up by
// the overflow.
func (m *Model) canvasOrigin() (col, row int) {
	prefix := m.slidePrefix(m.deck.Current())
	col = cardBorder + cardPadX
	row = progressRows + cardBorder + cardPadY + lipgloss.Height(prefix)
	if m.visual != nil {
		if over := m.visualChrome(m.visual.chartShown) + m.visual.surface.Rows - m.height; over > 0 {
			row -= over
		}
	}
	return col, row
}

// slidePrefix is the card content above the slide's embedded component.
func (m *Model) slidePrefix(s deck.Slide) string {
	title := m.styles.Title.Render(s.Title)
	if s.Icon != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Center, s.Icon+"  ", title)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.styles.Body.Width(m.innerWidth()).Render(s.Content),
		"",
	)
}

func (m *Model) View() string {
	progress := viz.ProgressBar(m.deck.Progress(), m.width, m.styles.Theme)
	s := m.deck.Current()

	var body string
	if s.Kind == deck.KindIntro {
		body = m.viewIntro(s)
	} else {
		body = m.viewCard(s)
	}
	return lipgloss.JoinVertical(lipgloss.Left, progress, body, m.viewFooter())
}

func (m *Model) viewIntro(s deck.Slide) string {
	t := m.styles.Theme
	block := lipgloss.JoinVertical(lipgloss.Center,
		viz.GradientText(s.Title, t.Primary, t.Secondary),
		"",
		m.styles.Subtitle.Render(s.Subtitle),
		"",
		"",
		m.styles.Button.Render(startLabel),
		m.styles.Muted.Render("enter"),
	)
	return lipgloss.Place(m.width, m.height-progressRows-1, lipgloss.Center, lipgloss.Center, block)
}

func (m *Model) viewCard(s deck.Slide) string {
	parts := []string{m.slidePrefix(s)}
	switch s.Kind {
	case deck.KindVisual:
		if m.visual != nil {
			parts = append(parts, m.visual.view(m.styles))
		}
	case deck.KindQA:
		if m.chat != nil {
			parts = append(parts, m.chat.view(m.styles))
		}
	}
	parts = append(parts, "", m.viewNav())
	return m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// viewNav lays out previous, counter, and next across the card. Controls
// that cannot act at a boundary are blanked.
func (m *Model) viewNav() string {
	prev := m.styles.Muted.Render(prevLabel)
	if m.deck.AtFirst() {
		prev = strings.Repeat(" ", lipgloss.Width(prevLabel))
	}
	next := m.styles.Key.Render(nextLabel)
	if m.deck.AtLast() {
		next = strings.Repeat(" ", lipgloss.Width(nextLabel))
	}
	counter := m.styles.Muted.Render(fmt.Sprintf("%d / %d", m.deck.Index()+1, m.deck.Len()))

	gap := m.innerWidth() - lipgloss.Width(prev) - lipgloss.Width(next) - lipgloss.Width(counter)
	if gap < 2 {
		gap = 2
	}
	left := gap / 2
	return prev + strings.Repeat(" ", left) + counter + strings.Repeat(" ", gap-left) + next
}

func (m *Model) viewFooter() string {
	keys := []string{
		m.styles.Key.Render("←/→") + m.styles.Muted.Render(" navigate"),
		m.styles.Key.Render("t") + m.styles.Muted.Render(" theme"),
	}
	switch {
	case m.visual != nil:
		keys = append(keys,
			m.styles.Key.Render("m")+m.styles.Muted.Render(" mesh"),
			m.styles.Key.Render("f")+m.styles.Muted.Render(" falloff"))
	case m.chat != nil && m.chat.input.Focused():
		keys = []string{
			m.styles.Key.Render("enter") + m.styles.Muted.Render(" ask"),
			m.styles.Key.Render("esc") + m.styles.Muted.Render(" navigate"),
		}
	case m.chat != nil:
		keys = append(keys, m.styles.Key.Render("i")+m.styles.Muted.Render(" type"))
	}
	keys = append(keys, m.styles.Key.Render("q")+m.styles.Muted.Render(" quit"))
	return "  " + m.styles.Muted.Render(footerHint) + "   " + strings.Join(keys, "  ")
}

// Run starts the presentation and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
