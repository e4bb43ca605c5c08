package conversation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/observability/metrics"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// Platform identifies where an inbound message came from.
type Platform string

const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformWeb      Platform = "web"
)

// Inbound is one chat message entering the pipeline.
type Inbound struct {
	Text      string
	From      string
	Platform  Platform
	CompanyID string
}

// Processor is the message pipeline: normalize, classify, extract, execute,
// then deliver the reply. Web replies ride the synchronous response;
// WhatsApp replies are dispatched in the background so the webhook can ack
// immediately.
type Processor struct {
	executor   *Executor
	messenger  ReplyMessenger
	transcript *TranscriptStore
	metrics    *metrics.ConversationMetrics
	logger     *logging.Logger
	tracer     trace.Tracer

	sendTimeout time.Duration
}

// NewProcessor assembles the pipeline. messenger and transcript may be nil;
// the corresponding side effects are skipped.
func NewProcessor(
	executor *Executor,
	messenger ReplyMessenger,
	transcript *TranscriptStore,
	m *metrics.ConversationMetrics,
	logger *logging.Logger,
) *Processor {
	return &Processor{
		executor:    executor,
		messenger:   messenger,
		transcript:  transcript,
		metrics:     m,
		logger:      logger.Named("processor"),
		tracer:      otel.Tracer("lavamaster.internal.conversation"),
		sendTimeout: 10 * time.Second,
	}
}

// ProcessMessage runs one message through the pipeline and returns the
// outcome. The returned Result always carries a reply, including for unknown
// intents and execution failures.
func (p *Processor) ProcessMessage(ctx context.Context, in Inbound) Result {
	ctx, span := p.tracer.Start(ctx, "conversation.ProcessMessage",
		trace.WithAttributes(attribute.String("platform", string(in.Platform))))
	defer span.End()

	normalized := NormalizeText(in.Text)
	intent := ClassifyIntent(normalized)
	fields := ExtractFields(intent, normalized)
	span.SetAttributes(attribute.String("intent", string(intent)))

	res := p.executor.Execute(ctx, in.CompanyID, intent, fields)

	if p.metrics != nil {
		p.metrics.ObserveMessage(string(res.Intent), string(res.Failure))
	}
	p.logger.Info("message processed",
		"platform", in.Platform,
		"intent", res.Intent,
		"failure", res.Failure,
	)

	p.record(ctx, in, res)

	if in.Platform == PlatformWhatsApp && p.messenger != nil && in.From != "" {
		go p.deliver(in.From, res.Reply)
	}

	return res
}

func (p *Processor) record(ctx context.Context, in Inbound, res Result) {
	if p.transcript == nil {
		return
	}
	for _, msg := range []TranscriptMessage{
		{Role: "user", Body: in.Text},
		{Role: "assistant", Body: res.Reply},
	} {
		if err := p.transcript.Append(ctx, in.CompanyID, in.From, msg); err != nil {
			p.logger.Warn("transcript append failed", "error", err)
			return
		}
	}
}

// deliver sends the reply outside the request lifecycle. Failures are logged
// and counted; the inbound message was already processed either way.
func (p *Processor) deliver(to, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.sendTimeout)
	defer cancel()

	err := p.messenger.SendText(ctx, to, body)
	if p.metrics != nil {
		p.metrics.ObserveDelivery(err == nil)
	}
	if err != nil {
		p.logger.Error("reply delivery failed", "to", to, "error", err)
	}
}
