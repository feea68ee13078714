package bridge

import (
	"context"

	"github.com/Newrona-pi/Twilio-mensetsu/internal/realtime"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/tools"
	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

// runOutbound relays assistant audio back to the caller and dispatches
// tool calls. It also owns call termination: once end has been
// requested, the legs close a grace period after the farewell audio
// finishes.
func (b *Bridge) runOutbound(ctx context.Context, tw TelephonyLeg, ai AILeg, sess *Session, dispatcher *tools.Dispatcher, shutdown func()) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		ev, err := ai.ReadEvent()
		if err != nil {
			if sess.Closing() {
				return nil
			}
			b.logger.Warn("AI leg read failed", logger.Error(err))
			return nil
		}

		switch ev.Type {
		case realtime.EventAudioDelta:
			streamSID := sess.StreamSID()
			if streamSID == "" {
				// Audio can arrive before the start frame has named
				// the stream; there is nowhere to address it yet.
				continue
			}
			sess.SetAISpeaking(true)
			if err := tw.SendMedia(streamSID, ev.Delta); err != nil {
				if sess.Closing() {
					return nil
				}
				b.logger.Warn("Telephony leg write failed", logger.Error(err))
				return nil
			}

		case realtime.EventAudioDone:
			sess.SetAISpeaking(false)
			if sess.EndRequested() {
				b.scheduleClose(sess, shutdown)
			}

		case realtime.EventFunctionCallDone:
			b.handleToolCall(ctx, ev, ai, sess, dispatcher, shutdown)

		case realtime.EventError:
			b.logger.Error("Realtime session error",
				logger.String("stream_sid", sess.StreamSID()),
				logger.String("detail", string(ev.Error)))
		}
	}
}

func (b *Bridge) handleToolCall(ctx context.Context, ev *realtime.ServerEvent, ai AILeg, sess *Session, dispatcher *tools.Dispatcher, shutdown func()) {
	output, respond := dispatcher.Invoke(ctx, ev.Name, ev.Arguments)

	if respond {
		if err := ai.SendToolOutput(ev.CallID, output); err != nil {
			b.logger.Warn("Failed to send tool output", logger.Error(err))
			return
		}
		if err := ai.CreateResponse(); err != nil {
			b.logger.Warn("Failed to request follow-up response", logger.Error(err))
		}
		return
	}

	// No output goes back for terminal tools. If the assistant is still
	// speaking, audio done schedules the close; if it already went
	// quiet, no further audio event will arrive, so schedule it here.
	if sess.EndRequested() && !sess.AISpeaking() {
		b.scheduleClose(sess, shutdown)
	}
}
