package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"struggle-quiz-service/internal/app"
	"struggle-quiz-service/internal/domain"
)

// WSHandler is the chat-style gateway: it maps inbound command frames onto
// the word and challenge use cases and renders outcomes back to the user.
// Awarding points on a correct answer happens here, on the caller side of
// the coordinator, via the ledger port.
type WSHandler struct {
	words           *app.WordService
	challenges      *app.ChallengeService
	ledger          app.PointsLedger
	pointsPerAnswer int64
	upgrader        websocket.Upgrader
}

func NewWSHandler(words *app.WordService, challenges *app.ChallengeService, ledger app.PointsLedger, pointsPerAnswer int64) *WSHandler {
	return &WSHandler{
		words:           words,
		challenges:      challenges,
		ledger:          ledger,
		pointsPerAnswer: pointsPerAnswer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type wordPayload struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type answerPayload struct {
	Text string `json:"text"`
}

type challengeView struct {
	ChallengeID string    `json:"challengeId"`
	Term        string    `json:"term"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type resultView struct {
	Outcome    domain.OutcomeKind `json:"outcome"`
	Term       string             `json:"term"`
	Definition string             `json:"definition,omitempty"`
	Score      float64            `json:"score"`
	Awarded    int64              `json:"awarded"`
	Balance    int64              `json:"balance"`
	Reason     string             `json:"reason,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the connection and runs the command loop for one user.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	scope := domain.Scope{
		GuildID: r.URL.Query().Get("guildId"),
		UserID:  r.URL.Query().Get("userId"),
	}
	if scope.GuildID == "" || scope.UserID == "" {
		http.Error(w, "missing guildId or userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "addWord":
			var payload wordPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid addWord payload")
				continue
			}
			word, err := h.words.AddWord(r.Context(), scope, payload.Term, payload.Definition)
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.send(conn, "wordAdded", word)

		case "removeWord":
			var payload wordPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid removeWord payload")
				continue
			}
			removed, err := h.words.RemoveWord(r.Context(), scope, payload.Term)
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			if !removed {
				h.sendError(conn, "you do not have that word")
				continue
			}
			h.send(conn, "wordRemoved", wordPayload{Term: payload.Term})

		case "listWords":
			words, err := h.words.ListWords(r.Context(), scope)
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.send(conn, "words", words)

		case "challenge":
			chal, err := h.challenges.Open(r.Context(), scope)
			if err != nil {
				h.sendError(conn, openErrorMessage(err))
				continue
			}
			h.send(conn, "challenge", challengeView{
				ChallengeID: chal.ID,
				Term:        chal.Term,
				ExpiresAt:   chal.ExpiresAt,
			})

		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid answer payload")
				continue
			}
			h.handleAnswer(r, conn, scope, payload.Text)

		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

func (h *WSHandler) handleAnswer(r *http.Request, conn *websocket.Conn, scope domain.Scope, text string) {
	outcome, err := h.challenges.Submit(r.Context(), scope, text)
	if errors.Is(err, domain.ErrNoActiveChallenge) {
		h.sendError(conn, "no active challenge; send a challenge request first")
		return
	}
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	view := resultView{
		Outcome: outcome.Kind,
		Term:    outcome.Term,
		Score:   outcome.Score,
	}
	switch outcome.Kind {
	case domain.OutcomeCorrect:
		balance, err := h.ledger.Award(r.Context(), scope, h.pointsPerAnswer)
		if err != nil {
			// The challenge is already resolved; report the result anyway.
			log.Printf("award points for %s/%s: %v", scope.GuildID, scope.UserID, err)
		} else {
			view.Awarded = h.pointsPerAnswer
			view.Balance = balance
		}
	case domain.OutcomeIncorrect:
		// Reveal-on-failure is this gateway's presentation choice.
		view.Definition = outcome.Definition
	case domain.OutcomeFailed:
		view.Reason = "your answer could not be scored; try another challenge"
	}
	h.send(conn, "result", view)
}

func openErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyActive):
		return "you already have an active challenge; answer it or wait for it to expire"
	case errors.Is(err, domain.ErrNoWords):
		return "you have no struggle words; add some first"
	default:
		return err.Error()
	}
}

func (h *WSHandler) send(conn *websocket.Conn, msgType string, payload any) {
	if err := conn.WriteJSON(outboundMessage[any]{Type: msgType, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func (h *WSHandler) sendError(conn *websocket.Conn, message string) {
	h.send(conn, "error", errorPayload{Message: message})
}
