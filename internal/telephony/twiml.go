package telephony

import (
	"fmt"

	"github.com/twilio/twilio-go/twiml"
)

// EntryTwiML builds the answer for an incoming call: connect the call's
// audio to our media-stream endpoint. The greeting itself is spoken by
// the realtime session once the stream is up, so no <Say> here.
func EntryTwiML(host string) (string, error) {
	stream := &twiml.VoiceStream{
		Url:   fmt.Sprintf("wss://%s/voice/stream", host),
		Track: "inbound_track",
	}
	connect := &twiml.VoiceConnect{
		InnerElements: []twiml.Element{stream},
	}

	doc, err := twiml.Voice([]twiml.Element{connect})
	if err != nil {
		return "", fmt.Errorf("failed to render entry TwiML: %w", err)
	}
	return doc, nil
}
