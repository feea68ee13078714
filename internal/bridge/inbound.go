package bridge

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/Newrona-pi/Twilio-mensetsu/internal/audio"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/telephony"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/vad"
	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

// runInbound relays caller audio to the AI leg frame by frame and runs
// the VAD over it. Every media frame is forwarded regardless of who is
// speaking; only the commit that hands the turn over is gated.
func (b *Bridge) runInbound(ctx context.Context, tw TelephonyLeg, ai AILeg, sess *Session, detector *vad.Detector) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		frame, err := tw.ReadFrame()
		if err != nil {
			if sess.Closing() {
				return nil
			}
			b.logger.Warn("Telephony leg read failed", logger.Error(err))
			return nil
		}

		switch frame.Event {
		case telephony.EventStart:
			if frame.Start != nil {
				sess.Begin(frame.Start.StreamSID, frame.Start.CallSID)
				b.logger.Info("Media stream started",
					logger.String("stream_sid", frame.Start.StreamSID),
					logger.String("call_sid", frame.Start.CallSID))
			}

		case telephony.EventMedia:
			if frame.Media == nil {
				continue
			}
			if err := b.handleMedia(frame.Media, ai, sess, detector); err != nil {
				if sess.Closing() {
					return nil
				}
				b.logger.Warn("AI leg write failed", logger.Error(err))
				return nil
			}

		case telephony.EventStop:
			b.logger.Info("Media stream stopped",
				logger.String("stream_sid", sess.StreamSID()))
			return nil
		}
	}
}

func (b *Bridge) handleMedia(media *telephony.MediaPayload, ai AILeg, sess *Session, detector *vad.Detector) error {
	// Only the caller's track feeds the conversation. On a both-tracks
	// stream the assistant's own audio comes back as a second track and
	// must not enter its input buffer.
	if media.Track != telephony.TrackInbound {
		return nil
	}

	if err := ai.AppendAudio(media.Payload); err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(media.Payload)
	if err != nil {
		// The frame already went through; only the local VAD skips it.
		b.logger.Warn("Undecodable media payload", logger.Error(err))
		return nil
	}

	samples := audio.DecodeMuLaw(raw)
	switch detector.Process(samples, time.Now(), sess) {
	case vad.SpeechStarted:
		if sess.AISpeaking() {
			b.logger.Debug("Caller speech during assistant playback",
				logger.String("stream_sid", sess.StreamSID()))
		}

	case vad.UtteranceEnd:
		if sess.AISpeaking() {
			// Buffered but not acted on. The next quiet utterance end
			// commits everything accumulated so far.
			return nil
		}
		if err := ai.CommitInput(); err != nil {
			return err
		}
		if err := ai.CreateResponse(); err != nil {
			return err
		}
		b.logger.Debug("Utterance committed",
			logger.String("stream_sid", sess.StreamSID()))
	}

	return nil
}
