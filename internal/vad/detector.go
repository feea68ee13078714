package vad

import (
	"time"

	"github.com/Newrona-pi/Twilio-mensetsu/internal/audio"
	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

// Result is what the detector concluded from one frame
type Result int

const (
	// None means no state transition occurred
	None Result = iota
	// SpeechStarted means the caller just began speaking
	SpeechStarted
	// UtteranceEnd means the caller stopped speaking long enough to
	// hand the turn over
	UtteranceEnd
)

// State is the per-call speech state the detector reads and writes.
// It is owned by the call session; see bridge.Session.
type State interface {
	UserSpeaking() bool
	SetUserSpeaking(bool)
	VoiceFrames() int
	SetVoiceFrames(int)
	LastSpeech() time.Time
	SetLastSpeech(time.Time)
}

// Detector classifies inbound audio frames as speech or silence using
// RMS energy. A single frame above the threshold is noisy (clicks,
// breaths), so speech start requires a run of consecutive voice frames,
// and speech end requires trailing silence rather than a hard timer so
// natural micro-pauses do not cut an utterance short.
type Detector struct {
	voiceThreshold  int
	minVoiceFrames  int
	silenceDuration time.Duration
	logger          *logger.Logger
}

// NewDetector creates a detector with the given tuning
func NewDetector(voiceThreshold, minVoiceFrames int, silenceDuration time.Duration, log *logger.Logger) *Detector {
	return &Detector{
		voiceThreshold:  voiceThreshold,
		minVoiceFrames:  minVoiceFrames,
		silenceDuration: silenceDuration,
		logger:          log.Named("vad"),
	}
}

// Process classifies one decoded frame against the session state and
// returns the transition it caused, if any.
func (d *Detector) Process(samples []int16, now time.Time, s State) Result {
	rms := audio.RMS(samples)

	if rms > d.voiceThreshold {
		frames := s.VoiceFrames() + 1
		s.SetVoiceFrames(frames)

		if frames >= d.minVoiceFrames {
			s.SetLastSpeech(now)
			if !s.UserSpeaking() {
				s.SetUserSpeaking(true)
				d.logger.Debug("Speech detected",
					logger.Int("rms", rms),
					logger.Int("consecutive_frames", frames))
				return SpeechStarted
			}
		}
		return None
	}

	// Below threshold: any run of voice frames is broken
	s.SetVoiceFrames(0)

	if s.UserSpeaking() {
		silence := now.Sub(s.LastSpeech())
		if silence > d.silenceDuration {
			s.SetUserSpeaking(false)
			d.logger.Debug("Utterance end",
				logger.Duration("silence", silence))
			return UtteranceEnd
		}
	}

	return None
}
