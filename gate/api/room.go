package api

import (
	"errors"
	"io"

	"joy/common/http"

	"github.com/google/uuid"
)

type createRoomReq struct {
	HostID string `json:"hostId"`
}

type joinRoomReq struct {
	Code string `json:"code" binding:"required"`
}

// CreateRoomHandler 房主未给出 id 时分配一个
func (h *Handler) CreateRoomHandler(c *http.Context) error {
	var req createRoomReq
	if err := c.BindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.BadRequest("请求参数错误")
		return nil
	}
	if req.HostID == "" {
		req.HostID = uuid.NewString()
	}
	ticket, err := h.rooms.CreateRoom(c.Ctx(), req.HostID)
	if err != nil {
		return writeError(c, err)
	}
	c.Success(ticket)
	return nil
}

func (h *Handler) JoinRoomHandler(c *http.Context) error {
	var req joinRoomReq
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误")
		return nil
	}
	ticket, err := h.rooms.JoinRoom(c.Ctx(), req.Code)
	if err != nil {
		return writeError(c, err)
	}
	c.Success(ticket)
	return nil
}

func (h *Handler) CloseRoomHandler(c *http.Context) error {
	code := c.GetParam("code")
	if err := h.rooms.CloseRoom(c.Ctx(), code); err != nil {
		return writeError(c, err)
	}
	c.Success(map[string]interface{}{"roomCode": code})
	return nil
}
