package telephony

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

// Frame is one message on the Twilio media-stream connection.
// Twilio sends connected/start/media/stop events; only start, media and
// stop matter to the bridge — everything else is ignored.
type Frame struct {
	Event     string        `json:"event"`
	StreamSID string        `json:"streamSid,omitempty"`
	Start     *StartPayload `json:"start,omitempty"`
	Media     *MediaPayload `json:"media,omitempty"`
}

// StartPayload carries the stream identity assigned by Twilio
type StartPayload struct {
	StreamSID string `json:"streamSid"`
	CallSID   string `json:"callSid"`
}

// MediaPayload carries one base64-encoded mu-law audio chunk
type MediaPayload struct {
	Track     string `json:"track,omitempty"`
	Chunk     string `json:"chunk,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Payload   string `json:"payload"`
}

// Frame event types
const (
	EventStart = "start"
	EventMedia = "media"
	EventStop  = "stop"

	// TrackInbound is the caller's audio
	TrackInbound = "inbound"
)

// StreamConn wraps the media-stream WebSocket. Reads happen from the
// inbound relay only; writes come from the outbound relay, so a write
// lock keeps the gorilla connection safe if that ever changes.
type StreamConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	logger  *logger.Logger
}

// NewStreamConn wraps an upgraded media-stream connection
func NewStreamConn(conn *websocket.Conn, log *logger.Logger) *StreamConn {
	return &StreamConn{
		conn:   conn,
		logger: log.Named("twilio-stream"),
	}
}

// ReadFrame reads and parses the next frame from the telephony leg
func (c *StreamConn) ReadFrame() (*Frame, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read media stream frame: %w", err)
	}

	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("failed to parse media stream frame: %w", err)
	}

	return &frame, nil
}

// SendMedia sends one outbound audio chunk tagged with the stream ID
func (c *StreamConn) SendMedia(streamSID, payload string) error {
	frame := Frame{
		Event:     EventMedia,
		StreamSID: streamSID,
		Media:     &MediaPayload{Payload: payload},
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to marshal media frame: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to write media frame: %w", err)
	}
	return nil
}

// Close closes the telephony leg
func (c *StreamConn) Close() error {
	return c.conn.Close()
}
