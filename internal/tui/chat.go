package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gravdeck/internal/qa"
	"github.com/san-kum/gravdeck/internal/viz"
)

// replyMsg carries a finished generation call back to the event loop.
type replyMsg qa.Reply

// chatView is one mount of the Q&A panel. Its transcript dies with it.
type chatView struct {
	slideID int
	panel   *qa.Panel
	input   textinput.Model
	vp      viewport.Model
	spin    spinner.Model
	width   int
}

func newChatView(slideID int, panel *qa.Panel, width, height int, st viz.Styles) *chatView {
	in := textinput.New()
	in.Placeholder = qa.Placeholder
	in.CharLimit = 500
	in.Prompt = "› "

	c := &chatView{
		slideID: slideID,
		panel:   panel,
		input:   in,
		vp:      viewport.New(width, height),
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	c.resize(width, height, st)
	return c
}

func (c *chatView) focus() tea.Cmd {
	return tea.Batch(c.input.Focus(), textinput.Blink)
}

func (c *chatView) resize(width, height int, st viz.Styles) {
	c.width = width
	c.vp.Width = width
	c.vp.Height = height
	c.input.Width = width - 6
	c.refresh(st)
}

// submit hands the input to the panel. On acceptance the input is cleared
// and the returned command performs the call off the event loop.
func (c *chatView) submit(st viz.Styles) tea.Cmd {
	pend, ok := c.panel.Submit(c.input.Value())
	if !ok {
		return nil
	}
	c.input.SetValue("")
	c.refresh(st)

	panel := c.panel
	call := func() tea.Msg {
		return replyMsg(panel.Call(context.Background(), pend))
	}
	return tea.Batch(call, c.spin.Tick)
}

func (c *chatView) resolve(r replyMsg, st viz.Styles) bool {
	if !c.panel.Resolve(qa.Reply(r)) {
		return false
	}
	c.refresh(st)
	return true
}

// refresh re-renders the transcript and scrolls to the latest turn.
func (c *chatView) refresh(st viz.Styles) {
	c.spin.Style = st.Thinking
	c.vp.SetContent(c.renderTranscript(st))
	c.vp.GotoBottom()
}

func (c *chatView) renderTranscript(st viz.Styles) string {
	msgs := c.panel.Transcript()
	if len(msgs) == 0 {
		hint := lipgloss.JoinVertical(lipgloss.Center,
			"",
			st.Body.Render(qa.EmptyHint),
			st.Muted.Render(qa.ExampleHint),
		)
		return lipgloss.PlaceHorizontal(c.width, lipgloss.Center, hint)
	}

	bubbleWidth := c.width * 85 / 100
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if m.Role == qa.RoleUser {
			bubble := st.User.MaxWidth(bubbleWidth).Render(wrap(m.Text, bubbleWidth-2))
			b.WriteString(lipgloss.PlaceHorizontal(c.width, lipgloss.Right, bubble))
		} else if m.Failed {
			b.WriteString(st.Failure.Render(wrap(m.Text, bubbleWidth-4)))
		} else {
			b.WriteString(st.Assistant.Render(wrap(m.Text, bubbleWidth-4)))
		}
	}
	return b.String()
}

func (c *chatView) view(st viz.Styles) string {
	status := ""
	if c.panel.Awaiting() {
		status = c.spin.View() + " " + st.Thinking.Render(qa.ThinkingText)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		c.vp.View(),
		status,
		st.Input.Width(c.width-2).Render(c.input.View()),
	)
}

func wrap(s string, width int) string {
	if width < 10 {
		width = 10
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
