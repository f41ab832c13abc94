package api

import (
	"joy/common/http"
)

type rollReq struct {
	Session string `json:"session" binding:"required"`
	Count   int    `json:"count"`
}

func (h *Handler) RollHandler(c *http.Context) error {
	var req rollReq
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误")
		return nil
	}
	roll, err := h.dice.Roll(c.Ctx(), req.Session, req.Count)
	if err != nil {
		return writeError(c, err)
	}
	c.Success(map[string]interface{}{
		"faces": roll.Faces,
		"total": roll.Total(),
	})
	return nil
}

func (h *Handler) DiceHistoryHandler(c *http.Context) error {
	rolls, err := h.dice.History(c.Ctx(), c.GetQuery("session"))
	if err != nil {
		return writeError(c, err)
	}
	c.Success(map[string]interface{}{
		"rolls": rolls,
		"total": len(rolls),
	})
	return nil
}
