package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Newrona-pi/Twilio-mensetsu/internal/bridge"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/config"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/storage/sqlite"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/telephony"
	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

// Handler contains the HTTP handlers for the voice bridge
type Handler struct {
	config       *config.Config
	appointments *sqlite.AppointmentStorage
	callbacks    *sqlite.CallbackStorage
	upgrader     websocket.Upgrader
	logger       *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(cfg *config.Config, appointments *sqlite.AppointmentStorage, callbacks *sqlite.CallbackStorage, log *logger.Logger) *Handler {
	return &Handler{
		config:       cfg,
		appointments: appointments,
		callbacks:    callbacks,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Media stream connections carry no browser origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log.Named("api-handler"),
	}
}

// VoiceEntry answers the inbound-call webhook with TwiML that connects
// the call's media stream to this server.
func (h *Handler) VoiceEntry(w http.ResponseWriter, r *http.Request) {
	doc, err := telephony.EntryTwiML(r.Host)
	if err != nil {
		h.logger.Error("Failed to build entry TwiML", logger.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Incoming call", logger.String("host", r.Host))
	w.Header().Set("Content-Type", "text/xml")
	w.Write([]byte(doc))
}

// VoiceStream upgrades the media stream connection and runs the audio
// bridge for the lifetime of the call.
func (h *Handler) VoiceStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade media stream connection", logger.Error(err))
		return
	}

	stream := telephony.NewStreamConn(conn, h.logger)
	b := bridge.New(
		h.config,
		bridge.SQLiteAppointments{Storage: h.appointments},
		bridge.SQLiteCallbacks{Storage: h.callbacks},
		h.logger,
	)

	if err := b.Run(r.Context(), stream); err != nil {
		h.logger.Error("Bridge terminated with error", logger.Error(err))
	}
}

// GetAppointments returns all saved appointments
func (h *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	records, err := h.appointments.List()
	if err != nil {
		h.logger.Error("Failed to list appointments", logger.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, map[string]interface{}{
		"appointments": records,
		"count":        len(records),
	})
}

// GetCallbacks returns all saved callback requests
func (h *Handler) GetCallbacks(w http.ResponseWriter, r *http.Request) {
	records, err := h.callbacks.List()
	if err != nil {
		h.logger.Error("Failed to list callbacks", logger.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, map[string]interface{}{
		"callbacks": records,
		"count":     len(records),
	})
}

// GetHealth returns the health of the service
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}
