package bridge

import (
	"sync"
	"time"
)

// Session holds per-call state shared between the two relay goroutines.
// All fields are mutex guarded since the inbound relay drives the VAD
// while the outbound relay flips speaking and termination flags.
type Session struct {
	mu sync.Mutex

	streamSID string
	callSID   string

	aiSpeaking   bool
	userSpeaking bool
	voiceFrames  int
	lastSpeech   time.Time

	endRequested bool
	closing      bool
}

func NewSession() *Session {
	return &Session{}
}

// Begin records the identifiers from the stream start frame.
func (s *Session) Begin(streamSID, callSID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streamSID = streamSID
	s.callSID = callSID
}

func (s *Session) StreamSID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streamSID
}

func (s *Session) CallSID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callSID
}

func (s *Session) AISpeaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aiSpeaking
}

func (s *Session) SetAISpeaking(speaking bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiSpeaking = speaking
}

func (s *Session) UserSpeaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userSpeaking
}

func (s *Session) SetUserSpeaking(speaking bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userSpeaking = speaking
}

func (s *Session) VoiceFrames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voiceFrames
}

func (s *Session) SetVoiceFrames(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voiceFrames = n
}

func (s *Session) LastSpeech() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSpeech
}

func (s *Session) SetLastSpeech(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSpeech = t
}

// RequestEnd marks the call for termination. The outbound relay closes
// the legs once the farewell has finished playing out.
func (s *Session) RequestEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endRequested = true
}

func (s *Session) EndRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endRequested
}

// BeginClose marks teardown as underway. It returns false if teardown
// was already in progress, so close work runs exactly once.
func (s *Session) BeginClose() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.closing = true
	return true
}

func (s *Session) Closing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}
