package bridge

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Newrona-pi/Twilio-mensetsu/internal/config"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/realtime"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/telephony"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/tools"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/vad"
	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

// AILeg is the realtime voice session the bridge relays audio to and from.
type AILeg interface {
	ConfigureSession(params realtime.SessionParams) error
	AppendAudio(payload string) error
	CommitInput() error
	CreateResponse() error
	CreateResponseWithInstructions(instructions string) error
	SendToolOutput(callID, output string) error
	ReadEvent() (*realtime.ServerEvent, error)
	Close() error
}

// TelephonyLeg is the phone-side media stream.
type TelephonyLeg interface {
	ReadFrame() (*telephony.Frame, error)
	SendMedia(streamSID, payload string) error
	Close() error
}

// Bridge relays audio between a telephony media stream and a realtime
// voice session, deciding turn handoff with a local energy VAD and
// dispatching the session's tool calls. One Bridge handles one call.
type Bridge struct {
	cfg          *config.Config
	appointments tools.AppointmentStore
	callbacks    tools.CallbackStore
	dialAI       func(ctx context.Context) (AILeg, error)
	logger       *logger.Logger
}

// New builds a bridge for a single incoming call.
func New(cfg *config.Config, appointments tools.AppointmentStore, callbacks tools.CallbackStore, log *logger.Logger) *Bridge {
	b := &Bridge{
		cfg:          cfg,
		appointments: appointments,
		callbacks:    callbacks,
		logger:       log.Named("bridge"),
	}
	b.dialAI = func(ctx context.Context) (AILeg, error) {
		return realtime.Dial(ctx, cfg.OpenAI, log)
	}
	return b
}

// Run drives the call until either leg disconnects or the assistant
// ends it. It always closes both legs before returning.
func (b *Bridge) Run(ctx context.Context, tw TelephonyLeg) error {
	ai, err := b.dialAI(ctx)
	if err != nil {
		tw.Close()
		return fmt.Errorf("failed to dial realtime session: %w", err)
	}

	sess := NewSession()

	dispatcher, err := tools.NewDispatcher(tools.Deps{
		Call:           sess,
		Appointments:   b.appointments,
		Callbacks:      b.callbacks,
		Location:       b.cfg.Call.Location(),
		ClosedWeekdays: b.cfg.Availability.ClosedWeekdays,
	}, b.logger)
	if err != nil {
		ai.Close()
		tw.Close()
		return fmt.Errorf("failed to build tool dispatcher: %w", err)
	}

	shutdown := func() {
		if !sess.BeginClose() {
			return
		}
		ai.Close()
		tw.Close()
	}
	defer shutdown()

	instructions := b.cfg.OpenAI.Instructions
	if instructions == "" {
		instructions = realtime.DefaultInstructions
	}
	if err := ai.ConfigureSession(realtime.SessionParams{
		Modalities:        []string{"text", "audio"},
		Instructions:      instructions,
		Voice:             b.cfg.OpenAI.Voice,
		InputAudioFormat:  b.cfg.OpenAI.InputAudioFormat,
		OutputAudioFormat: b.cfg.OpenAI.OutputAudioFormat,
		Temperature:       b.cfg.OpenAI.Temperature,
		TurnDetection:     nil,
		Tools:             dispatcher.Definitions(),
		ToolChoice:        "auto",
	}); err != nil {
		return fmt.Errorf("failed to configure realtime session: %w", err)
	}

	greeting := b.cfg.OpenAI.Greeting
	if greeting == "" {
		greeting = realtime.DefaultGreeting
	}
	if err := ai.CreateResponseWithInstructions(greeting); err != nil {
		return fmt.Errorf("failed to request greeting: %w", err)
	}

	detector := vad.NewDetector(
		b.cfg.VAD.VoiceThreshold,
		b.cfg.VAD.MinVoiceFrames,
		b.cfg.VAD.SilenceDuration(),
		b.logger,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer shutdown()
		return b.runInbound(ctx, tw, ai, sess, detector)
	})
	g.Go(func() error {
		defer shutdown()
		return b.runOutbound(ctx, tw, ai, sess, dispatcher, shutdown)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	b.logger.Info("Call finished", logger.String("stream_sid", sess.StreamSID()))
	return nil
}

// scheduleClose tears the call down after the grace period so the last
// buffered audio reaches the caller before the stream drops.
func (b *Bridge) scheduleClose(sess *Session, shutdown func()) {
	grace := b.cfg.Call.EndGrace()
	b.logger.Info("Ending call",
		logger.String("stream_sid", sess.StreamSID()),
		logger.Duration("grace", grace))
	time.AfterFunc(grace, shutdown)
}
