package handler

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lzradio/lzradio-backend/internal/exam"
	"github.com/lzradio/lzradio-backend/internal/service"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// wsRequest is one client message on the exam stream.
type wsRequest struct {
	Action string `json:"action"` // "key" | "state" | "modal"
	// Key event fields, for action "key".
	Key       string `json:"key,omitempty"`
	TargetTag string `json:"target_tag,omitempty"`
	// Open reports the client's modal overlay state, for action "modal".
	Open bool `json:"open,omitempty"`
}

// wsResponse is one server message on the exam stream.
type wsResponse struct {
	Type string `json:"type"` // "state" | "tick" | "error"
	// Suppress tells the client to preventDefault on the key it sent.
	Suppress bool   `json:"suppress,omitempty"`
	Data     any    `json:"data,omitempty"`
	Error    string `json:"error,omitempty"`
}

// WSHandler streams an exam session over WebSocket: keyboard events in,
// state snapshots and countdown ticks out.
type WSHandler struct {
	examService *service.ExamService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(examService *service.ExamService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		examService: examService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// ExamSessionStream godoc
// WS /ws/v1/exam/sessions/:session_id/stream
// Upgrades to WebSocket. The client reports raw key events and modal
// state; the server dispatches them onto the session and pushes the
// resulting state, plus a tick every second while the countdown runs.
func (h *WSHandler) ExamSessionStream(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	sess, err := h.examService.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("session_id", sessionID.String()).Logger()
	wsLog.Info().Msg("exam stream connected")

	// The client owns the modal overlay; it mirrors that state here so
	// shortcuts stop working while a dialog is up.
	var modalOpen atomic.Bool

	dispatch := exam.KeyboardHandler(exam.KeyboardHandlers{
		OnPrevious:      sess.GoPrevious,
		OnNext:          sess.GoNext,
		OnSelectAnswer:  sess.SelectAnswer,
		CurrentQuestion: sess.CurrentQuestion,
		IsModalOpen:     modalOpen.Load,
	})

	// Writes from the tick pusher and the read loop are serialized
	// through one channel; gorilla connections allow one writer only.
	out := make(chan wsResponse, 8)
	done := make(chan struct{})
	defer close(done)

	go h.writeLoop(conn, out, done, wsLog)
	go h.pushTicks(sess, out, done)

	trySend(out, wsResponse{Type: "state", Data: sessionState(sess)})

	for {
		var msg wsRequest
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("unexpected close")
			} else {
				wsLog.Debug().Msg("connection closed")
			}
			return
		}

		switch msg.Action {
		case "key":
			suppress := dispatch(exam.KeyEvent{Key: msg.Key, TargetTag: msg.TargetTag})
			trySend(out, wsResponse{Type: "state", Suppress: suppress, Data: sessionState(sess)})
		case "modal":
			modalOpen.Store(msg.Open)
		case "state":
			trySend(out, wsResponse{Type: "state", Data: sessionState(sess)})
		default:
			wsLog.Warn().Str("action", msg.Action).Msg("unknown action")
			trySend(out, wsResponse{Type: "error", Error: "unknown action: " + msg.Action})
		}
	}
}

// trySend drops the message when the write buffer is full, which only
// happens once the connection is already broken.
func trySend(out chan<- wsResponse, msg wsResponse) {
	select {
	case out <- msg:
	default:
	}
}

func (h *WSHandler) writeLoop(conn *websocket.Conn, out <-chan wsResponse, done <-chan struct{}, log zerolog.Logger) {
	for {
		select {
		case msg := <-out:
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug().Err(err).Msg("write failed")
				return
			}
		case <-done:
			return
		}
	}
}

// pushTicks sends the countdown once per second while the session is
// simulated and in progress. Prep sessions get no ticks.
func (h *WSHandler) pushTicks(sess *exam.Session, out chan<- wsResponse, done <-chan struct{}) {
	if sess.Mode() != exam.ModeSimulated {
		return
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			remaining := sess.RemainingSeconds()
			tick := wsResponse{Type: "tick", Data: gin.H{
				"remaining_seconds": remaining,
				"remaining_display": exam.FormatTime(remaining),
				"warning_level":     exam.TimerWarningLevel(remaining),
				"state":             sess.State(),
			}}
			trySend(out, tick)
		case <-done:
			return
		}
	}
}
