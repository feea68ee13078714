package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Newrona-pi/Twilio-mensetsu/internal/realtime"
	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

// CallControl is what tool handlers may do to the call itself.
// Implemented by the call session.
type CallControl interface {
	// RequestEnd asks the bridge to close the call once the current
	// utterance has finished playing out.
	RequestEnd()
	// StreamSID identifies the active media stream for persisted records.
	StreamSID() string
}

// HandlerFunc executes one tool call and returns the text fed back into
// the conversation. Domain-validation failures are returned as the
// result string, not as an error: the conversation is the recovery path.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (string, error)

// Tool is one entry in the closed capability table. The schema
// advertised to the realtime session is generated from the same entry,
// so dispatcher and schema cannot diverge.
type Tool struct {
	Name        string
	Description string
	Parameters  realtime.ToolParameters
	Handler     HandlerFunc
	// Respond is false for tools whose result must not be written back
	// into the conversation (end_call).
	Respond bool
}

// Dispatcher routes function-call requests from the AI leg to handlers
type Dispatcher struct {
	tools  map[string]Tool
	order  []string
	logger *logger.Logger
}

// Deps are the collaborators the built-in tool set needs
type Deps struct {
	Call           CallControl
	Appointments   AppointmentStore
	Callbacks      CallbackStore
	Location       *time.Location
	ClosedWeekdays []int
	// Now is injectable for tests; defaults to time.Now
	Now func() time.Time
}

// AppointmentStore is the append-only appointment persistence boundary
type AppointmentStore interface {
	Append(record *AppointmentRecord) (string, error)
}

// CallbackStore is the append-only callback persistence boundary
type CallbackStore interface {
	Append(record *CallbackRecord) (string, error)
}

// AppointmentRecord mirrors the persisted appointment row
type AppointmentRecord struct {
	StreamSID string
	Date      string
	Time      string
	Messages  string
	CreatedAt time.Time
}

// CallbackRecord mirrors the persisted callback row
type CallbackRecord struct {
	StreamSID string
	Date      string
	Time      string
	Note      string
	CreatedAt time.Time
}

// NewDispatcher builds the dispatcher with the full built-in tool set
func NewDispatcher(deps Deps, log *logger.Logger) (*Dispatcher, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	d := &Dispatcher{
		tools:  make(map[string]Tool),
		logger: log.Named("tools"),
	}

	for _, tool := range builtinTools(deps) {
		if err := d.register(tool); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (d *Dispatcher) register(tool Tool) error {
	if tool.Name == "" || tool.Handler == nil {
		return fmt.Errorf("tool registration requires a name and a handler")
	}
	if _, exists := d.tools[tool.Name]; exists {
		return fmt.Errorf("duplicate tool name: %s", tool.Name)
	}
	d.tools[tool.Name] = tool
	d.order = append(d.order, tool.Name)
	return nil
}

// Definitions returns the tool schema advertised to the realtime
// session, in registration order.
func (d *Dispatcher) Definitions() []realtime.ToolDefinition {
	defs := make([]realtime.ToolDefinition, 0, len(d.order))
	for _, name := range d.order {
		tool := d.tools[name]
		defs = append(defs, realtime.ToolDefinition{
			Type:        "function",
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  tool.Parameters,
		})
	}
	return defs
}

// Invoke executes the named tool. The returned respond flag tells the
// caller whether output must be written back to the AI leg; an unknown
// name yields a diagnostic with respond=true so the session never
// stalls waiting for a result.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args string) (output string, respond bool) {
	tool, ok := d.tools[name]
	if !ok {
		d.logger.Warn("Unknown tool requested", logger.String("tool", name))
		return fmt.Sprintf("ツール %s は定義されていません。", name), true
	}

	result, err := tool.Handler(ctx, json.RawMessage(args))
	if err != nil {
		// Handler errors are conversational, never fatal to the call.
		d.logger.Error("Tool handler failed",
			logger.String("tool", name),
			logger.Error(err))
		return "処理に失敗しました。もう一度お試しください。", true
	}

	d.logger.Info("Tool invoked",
		logger.String("tool", name),
		logger.Bool("respond", tool.Respond))

	return result, tool.Respond
}
