package api

import (
	"errors"
	"strconv"
	"time"

	"joy/common/http"
	"joy/common/log"
	"joy/core/domain/repository"
	"joy/runtime/dice"
	"joy/runtime/game"
	"joy/runtime/game/engines/gomoku"
	"joy/runtime/game/engines/mahjong"
)

// PingHandler ping 检查
func PingHandler(c *http.Context) error {
	c.Success(map[string]interface{}{
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"service":   "gate",
	})
	return nil
}

// HealthHandler 健康检查，附带最近一次负载采集
func (h *Handler) HealthHandler(c *http.Context) error {
	games, players := h.sessions.GetStats()
	status := map[string]interface{}{
		"healthy":   true,
		"games":     games,
		"players":   players,
		"timestamp": time.Now().Unix(),
	}
	if h.monitor != nil {
		load := h.monitor.Last()
		status["cpu"] = load.CPUUsage
		status["mem"] = load.MemUsage
		status["load"] = load.CalculateLoad()
	}
	c.Success(status)
	return nil
}

// RemoveSessionHandler 结束对局并释放资源，五子棋与麻将共用
func (h *Handler) RemoveSessionHandler(c *http.Context) error {
	id := c.GetParam("id")
	if err := h.sessions.Remove(id); err != nil {
		return writeError(c, err)
	}
	c.Success(map[string]interface{}{"id": id})
	return nil
}

// writeError 把领域错误映射为响应：找不到 404，规则拒绝 409，参数错误 400
func writeError(c *http.Context, err error) error {
	switch {
	case errors.Is(err, game.ErrSessionNotFound), errors.Is(err, repository.ErrRoomNotFound):
		c.NotFound(err.Error())
	case errors.Is(err, gomoku.ErrOutOfRange),
		errors.Is(err, game.ErrUnknownMode),
		errors.Is(err, game.ErrBadRoomCode),
		errors.Is(err, dice.ErrDiceCount),
		errors.Is(err, repository.ErrEmptySession),
		errors.Is(err, mahjong.ErrUnknownTile),
		errors.Is(err, mahjong.ErrInvalidSeat),
		errors.Is(err, mahjong.ErrEmptyHand):
		c.BadRequest(err.Error())
	case errors.Is(err, gomoku.ErrOccupied),
		errors.Is(err, gomoku.ErrGameOver),
		errors.Is(err, gomoku.ErrNotYourTurn),
		errors.Is(err, gomoku.ErrThinking),
		errors.Is(err, mahjong.ErrGameOver),
		errors.Is(err, mahjong.ErrNotYourTurn),
		errors.Is(err, mahjong.ErrTileNotInHand),
		errors.Is(err, mahjong.ErrClaimPending),
		errors.Is(err, mahjong.ErrClaimNotAllowed):
		c.Rejected(err.Error())
	default:
		log.Error("请求 %s %s 处理失败: %v", c.Method(), c.Path(), err)
		return err
	}
	return nil
}

// seatParam ?seat= 缺省为 0 号位
func seatParam(c *http.Context) (int, error) {
	raw := c.GetQuery("seat")
	if raw == "" {
		return 0, nil
	}
	seat, err := strconv.Atoi(raw)
	if err != nil || seat < 0 || seat >= mahjong.SeatCount {
		return 0, mahjong.ErrInvalidSeat
	}
	return seat, nil
}
