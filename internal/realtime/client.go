package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Newrona-pi/Twilio-mensetsu/internal/config"
	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

// Client is the WebSocket leg to the realtime voice session.
// Note: the OpenAI Go SDK does not cover the realtime WebSocket API,
// so this speaks the protocol directly, same as the session-creation
// path does in comparable services.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex // both relays write to this leg
	logger  *logger.Logger
}

// Dial connects and authenticates a new realtime session
func Dial(ctx context.Context, cfg config.OpenAIConfig, log *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for realtime sessions")
	}

	url := fmt.Sprintf("%s?model=%s", cfg.RealtimeURL, cfg.Model)
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+cfg.APIKey)
	headers.Set("OpenAI-Beta", "realtime=v1")

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to dial realtime session (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to dial realtime session: %w", err)
	}

	log.Info("Realtime session connected",
		logger.String("model", cfg.Model),
		logger.String("voice", cfg.Voice))

	return &Client{
		conn:   conn,
		logger: log.Named("realtime"),
	}, nil
}

// ConfigureSession sends the session.update directive
func (c *Client) ConfigureSession(params SessionParams) error {
	return c.send(sessionUpdateEvent{Type: typeSessionUpdate, Session: params})
}

// AppendAudio appends one base64 audio chunk to the input buffer
func (c *Client) AppendAudio(payload string) error {
	return c.send(audioAppendEvent{Type: typeInputAudioAppend, Audio: payload})
}

// CommitInput finalizes the buffered audio as one complete input turn
func (c *Client) CommitInput() error {
	return c.send(bareEvent{Type: typeInputAudioCommit})
}

// CreateResponse asks the session to generate the next response
func (c *Client) CreateResponse() error {
	return c.send(bareEvent{Type: typeResponseCreate})
}

// CreateResponseWithInstructions asks for a response steered by one-off
// instructions, used for the opening greeting.
func (c *Client) CreateResponseWithInstructions(instructions string) error {
	return c.send(responseCreateEvent{
		Type: typeResponseCreate,
		Response: &responseOptions{
			Modalities:   []string{"text", "audio"},
			Instructions: instructions,
		},
	})
}

// SendToolOutput returns a tool result to the conversation. The caller
// must follow it with CreateResponse so the session continues.
func (c *Client) SendToolOutput(callID, output string) error {
	return c.send(itemCreateEvent{
		Type: typeConversationCreate,
		Item: functionCallItem{
			Type:   "function_call_output",
			CallID: callID,
			Output: output,
		},
	})
}

// ReadEvent reads and parses the next server event
func (c *Client) ReadEvent() (*ServerEvent, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read realtime event: %w", err)
	}

	var ev ServerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse realtime event: %w", err)
	}

	return &ev, nil
}

// Close closes the AI leg
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) send(ev any) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal client event: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to write client event: %w", err)
	}
	return nil
}
