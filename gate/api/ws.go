package api

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"joy/common/http"
	"joy/common/log"
	"joy/runtime/game/engines/mahjong"

	"github.com/gorilla/websocket"
)

var (
	pongWait             = 60 * time.Second
	writeWait            = 10 * time.Second
	pingInterval         = (pongWait * 9) / 10
	maxMessageSize int64 = 1024

	websocketUpgrade = websocket.Upgrader{
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}
)

// streamCommand 客户端经长连接发来的操作
type streamCommand struct {
	Action string `json:"action"` // discard | claim | reset
	Tile   string `json:"tile"`
	ID     *int   `json:"id"`
	Kind   string `json:"kind"`
}

type streamMessage struct {
	Snapshot *mahjong.Snapshot `json:"snapshot,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// MahjongStreamHandler 推送 seat 视角的牌桌快照，同时接受该座位的操作
func (h *Handler) MahjongStreamHandler(c *http.Context) error {
	seat, err := seatParam(c)
	if err != nil {
		return writeError(c, err)
	}
	eg, err := h.sessions.Mahjong(c.GetParam("id"))
	if err != nil {
		return writeError(c, err)
	}
	conn, err := websocketUpgrade.Upgrade(c.Writer(), c.Request(), nil)
	if err != nil {
		log.Warn("牌桌 %s 长连接升级失败: %v", eg.ID(), err)
		return nil
	}
	s := &stream{
		conn:    conn,
		engine:  eg,
		seat:    seat,
		replies: make(chan streamMessage, 8),
		done:    make(chan struct{}),
	}
	s.run(c.Ctx())
	return nil
}

type stream struct {
	conn    *websocket.Conn
	engine  *mahjong.Engine
	seat    int
	replies chan streamMessage
	done    chan struct{}
}

func (s *stream) run(ctx context.Context) {
	snapshots, cancel := s.engine.Subscribe(s.seat)
	defer cancel()
	log.Info("牌桌 %s 座位 %d 建立长连接", s.engine.ID(), s.seat)

	go s.writeLoop(snapshots)
	s.readLoop(ctx)
	close(s.done)
	_ = s.conn.Close()
	log.Info("牌桌 %s 座位 %d 长连接关闭", s.engine.ID(), s.seat)
}

func (s *stream) writeLoop(snapshots <-chan mahjong.Snapshot) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		var msg streamMessage
		select {
		case snap, ok := <-snapshots:
			if !ok {
				_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "table closed"), time.Now().Add(writeWait))
				_ = s.conn.Close()
				return
			}
			msg.Snapshot = &snap
		case msg = <-s.replies:
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				_ = s.conn.Close()
				return
			}
			continue
		case <-s.done:
			return
		}
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteJSON(msg); err != nil {
			log.Warn("牌桌 %s 座位 %d 推送失败: %v", s.engine.ID(), s.seat, err)
			_ = s.conn.Close()
			return
		}
	}
}

func (s *stream) readLoop(ctx context.Context) {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var cmd streamCommand
		if err := s.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("牌桌 %s 座位 %d 连接异常: %v", s.engine.ID(), s.seat, err)
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		if err := s.dispatch(ctx, cmd); err != nil {
			select {
			case s.replies <- streamMessage{Error: err.Error()}:
			default:
			}
		}
	}
}

// dispatch 成功的操作由引擎广播新快照，这里只回报错误
func (s *stream) dispatch(ctx context.Context, cmd streamCommand) error {
	switch cmd.Action {
	case "discard":
		tile, err := discardReq{Tile: cmd.Tile, ID: cmd.ID}.tile()
		if err != nil {
			return err
		}
		return s.engine.Discard(ctx, s.seat, tile)
	case "claim":
		kind, err := mahjong.ParseClaimKind(cmd.Kind)
		if err != nil {
			return err
		}
		return s.engine.Claim(ctx, s.seat, kind)
	case "reset":
		return s.engine.Reset(ctx)
	default:
		return fmt.Errorf("unknown action %q", cmd.Action)
	}
}
