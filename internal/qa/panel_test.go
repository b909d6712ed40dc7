package qa_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/language"

	"github.com/san-kum/gravdeck/internal/genai"
	"github.com/san-kum/gravdeck/internal/qa"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls []genai.Request
	text  string
	err   error
	panic bool
}

func (f *fakeGenerator) Generate(ctx context.Context, req genai.Request) (*genai.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.panic {
		panic("boom")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.Response{Text: f.text}, nil
}

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var _ = Describe("Panel", func() {
	var (
		gen   *fakeGenerator
		panel *qa.Panel
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		gen = &fakeGenerator{text: "Gravity is..."}
		panel = qa.NewPanel(gen, qa.Options{
			Model:   "gemini-test",
			Persona: qa.Persona(language.Arabic),
		})
	})

	It("starts with an empty transcript and idle", func() {
		Expect(panel.Transcript()).To(BeEmpty())
		Expect(panel.Awaiting()).To(BeFalse())
	})

	DescribeTable("ignores blank submissions",
		func(text string) {
			_, ok := panel.Submit(text)
			Expect(ok).To(BeFalse())
			Expect(panel.Transcript()).To(BeEmpty())
			Expect(panel.Awaiting()).To(BeFalse())
			Expect(gen.Calls()).To(Equal(0))
		},
		Entry("empty", ""),
		Entry("spaces", "   "),
		Entry("tabs and newlines", "\t\n "),
	)

	It("answers a question", func() {
		msg, ok := panel.Ask(ctx, "What is gravity?")
		Expect(ok).To(BeTrue())
		Expect(msg).To(Equal(qa.Message{Role: qa.RoleAssistant, Text: "Gravity is..."}))
		Expect(panel.Transcript()).To(Equal([]qa.Message{
			{Role: qa.RoleUser, Text: "What is gravity?"},
			{Role: qa.RoleAssistant, Text: "Gravity is..."},
		}))
		Expect(panel.Awaiting()).To(BeFalse())
	})

	It("sends the persona and only the current question", func() {
		panel.Ask(ctx, "first")
		panel.Ask(ctx, "second")

		Expect(gen.calls).To(HaveLen(2))
		last := gen.calls[1]
		Expect(last.Model).To(Equal("gemini-test"))
		Expect(last.SystemInstruction).To(Equal(qa.Persona(language.Arabic)))
		Expect(last.Contents).To(Equal("second"))
	})

	It("marks the panel busy until the reply is resolved", func() {
		pend, ok := panel.Submit("What is gravity?")
		Expect(ok).To(BeTrue())
		Expect(panel.Awaiting()).To(BeTrue())
		Expect(panel.Transcript()).To(HaveLen(1))

		reply := panel.Call(ctx, pend)
		Expect(panel.Resolve(reply)).To(BeTrue())
		Expect(panel.Awaiting()).To(BeFalse())
	})

	It("rejects a second submission while one is in flight", func() {
		first, ok := panel.Submit("one")
		Expect(ok).To(BeTrue())

		_, ok = panel.Submit("two")
		Expect(ok).To(BeFalse())
		Expect(panel.Transcript()).To(HaveLen(1))

		panel.Resolve(panel.Call(ctx, first))
		Expect(gen.Calls()).To(Equal(1))
		Expect(panel.Transcript()).To(HaveLen(2))
	})

	It("substitutes the apology for an empty reply", func() {
		gen.text = ""
		msg, _ := panel.Ask(ctx, "What is gravity?")
		Expect(msg.Text).To(Equal(qa.EmptyReplyText))
		Expect(panel.Awaiting()).To(BeFalse())
	})

	It("shows the generic failure when the service errors", func() {
		gen.err = errors.New("connection reset")
		msg, _ := panel.Ask(ctx, "What is gravity?")
		Expect(msg).To(Equal(qa.Message{Role: qa.RoleAssistant, Text: qa.FailureText, Failed: true}))
		Expect(panel.Awaiting()).To(BeFalse())
	})

	It("treats a generator panic as a failure", func() {
		gen.panic = true
		pend, _ := panel.Submit("What is gravity?")
		reply := panel.Call(ctx, pend)
		Expect(reply.Err).To(HaveOccurred())

		Expect(panel.Resolve(reply)).To(BeTrue())
		Expect(panel.Transcript()[1].Text).To(Equal(qa.FailureText))
		Expect(panel.Transcript()[1].Failed).To(BeTrue())
		Expect(panel.Awaiting()).To(BeFalse())
	})

	It("drops replies addressed to another panel", func() {
		other := qa.NewPanel(gen, qa.Options{Model: "gemini-test"})
		pend, _ := other.Submit("stale question")
		reply := other.Call(ctx, pend)

		_, ok := panel.Submit("fresh question")
		Expect(ok).To(BeTrue())
		Expect(panel.Resolve(reply)).To(BeFalse())
		Expect(panel.Transcript()).To(HaveLen(1))
		Expect(panel.Awaiting()).To(BeTrue())
	})

	It("drops duplicate replies", func() {
		pend, _ := panel.Submit("What is gravity?")
		reply := panel.Call(ctx, pend)
		Expect(panel.Resolve(reply)).To(BeTrue())
		Expect(panel.Resolve(reply)).To(BeFalse())
		Expect(panel.Transcript()).To(HaveLen(2))
	})

	It("can run the call off the event loop", func() {
		pend, _ := panel.Submit("What is gravity?")
		replies := make(chan qa.Reply, 1)
		go func() { replies <- panel.Call(ctx, pend) }()

		var reply qa.Reply
		Eventually(replies).Should(Receive(&reply))
		Expect(panel.Resolve(reply)).To(BeTrue())
		Expect(panel.Transcript()[1].Text).To(Equal("Gravity is..."))
	})
})

var _ = Describe("Operator log", func() {
	var (
		gen   *fakeGenerator
		panel *qa.Panel
		logs  *observer.ObservedLogs
	)

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		gen = &fakeGenerator{}
		panel = qa.NewPanel(gen, qa.Options{
			Model:   "gemini-test",
			Persona: "persona",
			Logger:  zap.New(core),
		})
	})

	errorEntries := func() []observer.LoggedEntry {
		return logs.FilterLevelExact(zapcore.ErrorLevel).All()
	}

	It("records one error carrying the request id when the service fails", func() {
		gen.err = errors.New("boom")
		pend, ok := panel.Submit("What is gravity?")
		Expect(ok).To(BeTrue())
		panel.Resolve(panel.Call(context.Background(), pend))

		entries := errorEntries()
		Expect(entries).To(HaveLen(1))
		fields := entries[0].ContextMap()
		Expect(fields).To(HaveKeyWithValue("request_id", pend.RequestID.String()))
		Expect(fields).To(HaveKeyWithValue("model", "gemini-test"))
		Expect(fields).To(HaveKeyWithValue("service_error", false))
		Expect(fields).To(HaveKeyWithValue("error", "boom"))
	})

	It("flags service-side failures", func() {
		gen.err = &genai.APIError{Code: 403, Message: "API key not valid"}
		_, ok := panel.Ask(context.Background(), "What is gravity?")
		Expect(ok).To(BeTrue())

		entries := errorEntries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].ContextMap()).To(HaveKeyWithValue("service_error", true))
	})

	It("records a panic as an error", func() {
		gen.panic = true
		_, ok := panel.Ask(context.Background(), "What is gravity?")
		Expect(ok).To(BeTrue())
		Expect(errorEntries()).To(HaveLen(1))
	})

	It("does not log an empty reply as an error", func() {
		gen.text = ""
		msg, ok := panel.Ask(context.Background(), "What is gravity?")
		Expect(ok).To(BeTrue())
		Expect(msg.Text).To(Equal(qa.EmptyReplyText))
		Expect(errorEntries()).To(BeEmpty())
		Expect(logs.FilterLevelExact(zapcore.WarnLevel).All()).To(BeEmpty())
	})
})

var _ = Describe("Persona", func() {
	It("uses the arabic instruction for arabic", func() {
		Expect(qa.Persona(language.Arabic)).To(ContainSubstring("باللغة العربية"))
		Expect(qa.Persona(language.MustParse("ar-EG"))).To(Equal(qa.Persona(language.Arabic)))
	})

	It("names other target languages", func() {
		Expect(qa.Persona(language.French)).To(ContainSubstring("French"))
		Expect(qa.Persona(language.English)).To(ContainSubstring("astrophysicist"))
	})
})
