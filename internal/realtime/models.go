package realtime

import "encoding/json"

// Client event types sent to the realtime session
const (
	typeSessionUpdate      = "session.update"
	typeInputAudioAppend   = "input_audio_buffer.append"
	typeInputAudioCommit   = "input_audio_buffer.commit"
	typeResponseCreate     = "response.create"
	typeConversationCreate = "conversation.item.create"
)

// Server event types the bridge reacts to
const (
	EventAudioDelta       = "response.audio.delta"
	EventAudioDone        = "response.audio.done"
	EventFunctionCallDone = "response.function_call_arguments.done"
	EventError            = "error"
)

// SessionParams configures the realtime voice session. TurnDetection is
// deliberately a pointer without omitempty: the wire value must be an
// explicit null to fully disable the service's own VAD, since turn
// handoff is decided locally by the bridge.
type SessionParams struct {
	Modalities        []string         `json:"modalities"`
	Instructions      string           `json:"instructions"`
	Voice             string           `json:"voice"`
	InputAudioFormat  string           `json:"input_audio_format"`
	OutputAudioFormat string           `json:"output_audio_format"`
	Temperature       float64          `json:"temperature,omitempty"`
	TurnDetection     *TurnDetection   `json:"turn_detection"`
	Tools             []ToolDefinition `json:"tools,omitempty"`
	ToolChoice        string           `json:"tool_choice,omitempty"`
}

// TurnDetection configures server-side turn detection when enabled
type TurnDetection struct {
	Type              string   `json:"type"`
	Threshold         *float64 `json:"threshold,omitempty"`
	SilenceDurationMs *int     `json:"silence_duration_ms,omitempty"`
}

// ToolDefinition advertises one callable capability to the session
type ToolDefinition struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  ToolParameters `json:"parameters"`
}

// ToolParameters is the JSON-schema argument description for a tool
type ToolParameters struct {
	Type       string                  `json:"type"`
	Properties map[string]ToolProperty `json:"properties"`
	Required   []string                `json:"required"`
}

// ToolProperty describes one tool argument
type ToolProperty struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ServerEvent is one incremental event from the realtime session. Only
// the fields the bridge consumes are modeled; everything else stays in
// the raw payload.
type ServerEvent struct {
	Type      string          `json:"type"`
	Delta     string          `json:"delta,omitempty"`
	CallID    string          `json:"call_id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Arguments string          `json:"arguments,omitempty"`
	Error     json.RawMessage `json:"error,omitempty"`
}

// sessionUpdateEvent wraps SessionParams for the wire
type sessionUpdateEvent struct {
	Type    string        `json:"type"`
	Session SessionParams `json:"session"`
}

// audioAppendEvent appends one base64 audio chunk to the input buffer
type audioAppendEvent struct {
	Type  string `json:"type"`
	Audio string `json:"audio"`
}

// bareEvent is a client event with no payload (commit, plain response.create)
type bareEvent struct {
	Type string `json:"type"`
}

// responseCreateEvent optionally carries one-off response instructions
type responseCreateEvent struct {
	Type     string           `json:"type"`
	Response *responseOptions `json:"response,omitempty"`
}

type responseOptions struct {
	Modalities   []string `json:"modalities,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// itemCreateEvent feeds a tool result back into the conversation
type itemCreateEvent struct {
	Type string           `json:"type"`
	Item functionCallItem `json:"item"`
}

type functionCallItem struct {
	Type   string `json:"type"`
	CallID string `json:"call_id"`
	Output string `json:"output"`
}
