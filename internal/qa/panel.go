// Package qa implements the question panel: a transcript of user and
// assistant turns backed by a text-generation service.
package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/san-kum/gravdeck/internal/genai"
	"go.uber.org/zap"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role Role
	Text string
	// Failed marks an assistant turn that stands in for a failed request.
	Failed bool
}

// Generator is the text-generation collaborator.
type Generator interface {
	Generate(ctx context.Context, req genai.Request) (*genai.Response, error)
}

type Options struct {
	Model   string
	Persona string
	Logger  *zap.Logger
}

// Pending is an accepted question whose answer has not been applied yet.
type Pending struct {
	PanelID   ulid.ULID
	RequestID ulid.ULID
	Request   genai.Request
}

// Reply is the outcome of a Pending call, delivered back to the panel.
type Reply struct {
	PanelID   ulid.ULID
	RequestID ulid.ULID
	Text      string
	Err       error
}

// Panel owns one transcript for the lifetime of a mount. Submit and Resolve
// must be called from the event loop; Call may run on any goroutine.
type Panel struct {
	id         ulid.ULID
	gen        Generator
	model      string
	persona    string
	log        *zap.Logger
	transcript []Message
	awaiting   bool
	inflight   ulid.ULID
}

func NewPanel(gen Generator, opts Options) *Panel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{
		id:      ulid.Make(),
		gen:     gen,
		model:   opts.Model,
		persona: opts.Persona,
		log:     log,
	}
}

func (p *Panel) ID() ulid.ULID { return p.id }

func (p *Panel) Awaiting() bool { return p.awaiting }

func (p *Panel) Transcript() []Message {
	out := make([]Message, len(p.transcript))
	copy(out, p.transcript)
	return out
}

// Submit records the question and returns the request to send. It returns
// false without side effects for blank text or while a request is in flight.
func (p *Panel) Submit(text string) (Pending, bool) {
	if strings.TrimSpace(text) == "" || p.awaiting {
		return Pending{}, false
	}
	p.transcript = append(p.transcript, Message{Role: RoleUser, Text: text})
	p.awaiting = true
	p.inflight = ulid.Make()
	return Pending{
		PanelID:   p.id,
		RequestID: p.inflight,
		Request: genai.Request{
			Model:             p.model,
			SystemInstruction: p.persona,
			Contents:          text,
		},
	}, true
}

// Call performs the outbound request. It always returns a Reply, converting
// a panic in the generator into an error.
func (p *Panel) Call(ctx context.Context, pend Pending) (reply Reply) {
	reply = Reply{PanelID: pend.PanelID, RequestID: pend.RequestID}
	log := p.log.With(
		zap.String("request_id", pend.RequestID.String()),
		zap.String("model", pend.Request.Model),
	)
	defer func() {
		if r := recover(); r != nil {
			reply.Text, reply.Err = "", fmt.Errorf("qa: generator panic: %v", r)
			log.Error("generation failed", zap.Error(reply.Err))
		}
	}()

	resp, err := p.gen.Generate(ctx, pend.Request)
	if err != nil {
		reply.Err = err
		log.Error("generation failed", zap.Error(err), zap.Bool("service_error", genai.IsAPIError(err)))
		return reply
	}
	if resp != nil {
		reply.Text = resp.Text
	}
	log.Debug("generation succeeded", zap.Int("chars", len(reply.Text)))
	return reply
}

// Resolve appends the assistant turn for r. Replies addressed to another
// panel or to a request that is no longer in flight are dropped.
func (p *Panel) Resolve(r Reply) bool {
	if r.PanelID != p.id || !p.awaiting || r.RequestID != p.inflight {
		return false
	}
	defer func() {
		p.awaiting = false
		p.inflight = ulid.ULID{}
	}()

	msg := Message{Role: RoleAssistant, Text: r.Text}
	switch {
	case r.Err != nil:
		msg.Text, msg.Failed = FailureText, true
	case msg.Text == "":
		msg.Text = EmptyReplyText
	}
	p.transcript = append(p.transcript, msg)
	return true
}

// Ask runs one question through the panel synchronously.
func (p *Panel) Ask(ctx context.Context, text string) (Message, bool) {
	pend, ok := p.Submit(text)
	if !ok {
		return Message{}, false
	}
	p.Resolve(p.Call(ctx, pend))
	return p.transcript[len(p.transcript)-1], true
}
