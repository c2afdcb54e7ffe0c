package app

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/fightfantasy/internal/core/dice"
	apperrors "github.com/louisbranch/fightfantasy/internal/platform/errors"
	"github.com/louisbranch/fightfantasy/internal/services/companion/fight"
	"github.com/louisbranch/fightfantasy/internal/services/companion/roll"
	"github.com/louisbranch/fightfantasy/internal/services/companion/theme"
	"golang.org/x/net/websocket"
)

const (
	maxFramePayloadBytes   = 16 * 1024
	maxFramesPerSecond     = 40
	maxDecodeErrorsPerConn = 3
)

// Client frame types.
const (
	frameRollDie    = "dice.roll_die"
	frameRollDice   = "dice.roll_dice"
	frameTestSkill  = "dice.test_skill"
	frameTestLuck   = "dice.test_luck"
	frameAttack     = "fight.attack"
	frameUseLuck    = "fight.use_luck"
	frameSetMonster = "fight.set_monster"
	frameReset      = "fight.reset"
	frameSetMode    = "theme.set_mode"
	frameSetPalette = "theme.set_palette"
	frameFreeRoll   = "dice.roll"
)

// Server frame types.
const (
	frameTableState   = "table.state"
	frameRollStarted  = "roll.started"
	frameRollResolved = "roll.resolved"
	frameThemeChanged = "theme.changed"
	frameTableError   = "table.error"
	frameDiceRolled   = "dice.rolled"
)

type wsFrame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type wsErrorEnvelope struct {
	Error wsError `json:"error"`
}

type wsError struct {
	Code      apperrors.Code `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
}

type tableStatePayload struct {
	TableID string      `json:"table_id"`
	State   fight.State `json:"state"`
	HTML    string      `json:"html,omitempty"`
}

type rollStartedPayload struct {
	TableID string    `json:"table_id"`
	Kind    roll.Kind `json:"kind"`
}

type rollResolvedPayload struct {
	TableID string      `json:"table_id"`
	Event   fight.Event `json:"event"`
}

type themeChangedPayload struct {
	Theme theme.Snapshot `json:"theme"`
}

type freeRollPayload struct {
	Dice []dice.Spec `json:"dice"`
	Seed *int64      `json:"seed,omitempty"`
}

type diceRolledPayload struct {
	TableID string      `json:"table_id"`
	Result  dice.Result `json:"result"`
}

type setModePayload struct {
	Mode string `json:"mode"`
}

type setPalettePayload struct {
	Palette string `json:"palette"`
}

type wsPeer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func newWSPeer(encoder *json.Encoder) *wsPeer {
	return &wsPeer{encoder: encoder}
}

func (p *wsPeer) writeFrame(frame wsFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(frame)
}

func (h *handler) handleWSConn(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	request := conn.Request()
	tag := h.loc.Default()
	hero := h.cfg.Hero
	if request != nil {
		tag, _ = h.loc.ResolveTag(request)
		hero = heroFromQuery(request.URL.Query(), hero)
	}
	printer := h.loc.Printer(tag)
	peer := newWSPeer(json.NewEncoder(conn))

	roller, err := h.cfg.NewRoller()
	if err != nil {
		h.logger.Printf("table open failed err=%v", err)
		_ = writeWSError(peer, "", apperrors.CodeInternal, "dice unavailable")
		return
	}

	t := newTable(conn, peer, printer, h.newResolver(hero, roller), h.theme)
	h.tables.add(t)
	h.logger.Printf("table opened table_id=%s lang=%s", t.id, tag)
	defer func() {
		t.close()
		h.logger.Printf("table closed table_id=%s", t.id)
		h.tables.remove(t.id)
	}()
	t.open()

	decoder := json.NewDecoder(conn)
	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		var frame wsFrame
		if err := decoder.Decode(&frame); err != nil {
			if errors.Is(err, io.EOF) || t.isClosed() {
				return
			}
			decodeErrors++
			_ = t.writeError("", apperrors.CodeInvalidArgument)
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		if len(frame.Payload) > maxFramePayloadBytes {
			_ = writeWSError(peer, frame.RequestID, apperrors.CodeInvalidArgument, "payload too large")
			continue
		}

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxFramesPerSecond {
			_ = writeWSError(peer, frame.RequestID, apperrors.CodeResourceExhausted, "rate limit exceeded")
			return
		}

		h.dispatch(t, frame)
	}
}

func (h *handler) dispatch(t *table, frame wsFrame) {
	rid := frame.RequestID
	switch frame.Type {
	case frameRollDie:
		t.startRoll(rid, t.resolver.RollDie)
	case frameRollDice:
		t.startRoll(rid, t.resolver.RollDice)
	case frameTestSkill:
		t.startRoll(rid, t.resolver.TestSkill)
	case frameTestLuck:
		t.startRoll(rid, t.resolver.TestLuck)
	case frameAttack:
		t.startRoll(rid, t.resolver.Attack)
	case frameUseLuck:
		t.startRoll(rid, t.resolver.UseLuck)
	case frameSetMonster:
		var stats fight.Stats
		if err := json.Unmarshal(frame.Payload, &stats); err != nil {
			_ = t.writeError(rid, apperrors.CodeInvalidArgument)
			return
		}
		t.setMonster(rid, stats)
	case frameReset:
		t.reset(rid)
	case frameFreeRoll:
		var payload freeRollPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			_ = t.writeError(rid, apperrors.CodeInvalidArgument)
			return
		}
		t.freeRoll(rid, payload)
	case frameSetMode:
		var payload setModePayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil || !h.theme.SetMode(theme.Mode(strings.TrimSpace(payload.Mode))) {
			_ = t.writeError(rid, apperrors.CodeInvalidArgument)
		}
	case frameSetPalette:
		var payload setPalettePayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil || !h.theme.SetPalette(strings.TrimSpace(payload.Palette)) {
			_ = t.writeError(rid, apperrors.CodeInvalidArgument)
		}
	default:
		_ = writeWSError(t.peer, rid, apperrors.CodeInvalidArgument, "unsupported frame type")
	}
}

func writeWSError(peer *wsPeer, requestID string, code apperrors.Code, message string) error {
	return peer.writeFrame(wsFrame{
		Type:      frameTableError,
		RequestID: requestID,
		Payload: mustJSON(wsErrorEnvelope{
			Error: wsError{
				Code:      code,
				Message:   message,
				Retryable: code == apperrors.CodeFailedPrecondition,
			},
		}),
	})
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("failed to marshal websocket frame payload: %v", err)
		return nil
	}
	return b
}
