package api

import (
	"errors"
	"io"

	"joy/common/http"
)

type createGomokuReq struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
}

type moveReq struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

func (h *Handler) CreateGomokuHandler(c *http.Context) error {
	var req createGomokuReq
	if err := c.BindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.BadRequest("请求参数错误")
		return nil
	}
	m, err := h.sessions.CreateGomoku(req.Mode, req.Difficulty)
	if err != nil {
		return writeError(c, err)
	}
	c.Success(m.Snapshot())
	return nil
}

func (h *Handler) GetGomokuHandler(c *http.Context) error {
	m, err := h.sessions.Gomoku(c.GetParam("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Success(m.Snapshot())
	return nil
}

// GomokuMoveHandler 真人落子；AI 模式下电脑应对异步进行，通过 GET 轮询
func (h *Handler) GomokuMoveHandler(c *http.Context) error {
	var req moveReq
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误")
		return nil
	}
	m, err := h.sessions.Gomoku(c.GetParam("id"))
	if err != nil {
		return writeError(c, err)
	}
	snap, err := m.Play(*req.Row, *req.Col)
	if err != nil {
		return writeError(c, err)
	}
	c.Success(snap)
	return nil
}

func (h *Handler) ResetGomokuHandler(c *http.Context) error {
	m, err := h.sessions.Gomoku(c.GetParam("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Success(m.Reset())
	return nil
}
