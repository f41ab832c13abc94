package api

import (
	"joy/common/http"
	"joy/runtime/game/engines/mahjong"
)

type discardReq struct {
	Seat int    `json:"seat"`
	Tile string `json:"tile"` // 牌名，如 "5m"、"East"；给出时忽略 type
	Type *int   `json:"type"`
	ID   *int   `json:"id"`
}

// tile 牌名优先；没有 id 时打出任意一张同种牌
func (r discardReq) tile() (mahjong.Tile, error) {
	t := mahjong.Tile{ID: -1}
	switch {
	case r.Tile != "":
		tt, err := mahjong.ParseTileType(r.Tile)
		if err != nil {
			return t, err
		}
		t.Type = tt
	case r.Type != nil && mahjong.TileType(*r.Type).Valid():
		t.Type = mahjong.TileType(*r.Type)
	default:
		return t, mahjong.ErrUnknownTile
	}
	if r.ID != nil {
		t.ID = *r.ID
	}
	return t, nil
}

type claimReq struct {
	Seat int    `json:"seat"`
	Kind string `json:"kind" binding:"required"`
}

type adviceReq struct {
	Tiles []string `json:"tiles"`
	Hand  string   `json:"hand"` // 紧凑写法，如 "123m 44m EEE"
}

func (h *Handler) CreateMahjongHandler(c *http.Context) error {
	eg, err := h.sessions.CreateMahjong()
	if err != nil {
		return writeError(c, err)
	}
	c.Success(map[string]interface{}{
		"id":       eg.ID(),
		"snapshot": eg.Snapshot(0),
	})
	return nil
}

func (h *Handler) GetMahjongHandler(c *http.Context) error {
	seat, err := seatParam(c)
	if err != nil {
		return writeError(c, err)
	}
	eg, err := h.sessions.Mahjong(c.GetParam("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Success(eg.Snapshot(seat))
	return nil
}

func (h *Handler) DiscardHandler(c *http.Context) error {
	var req discardReq
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误")
		return nil
	}
	tile, err := req.tile()
	if err != nil {
		return writeError(c, err)
	}
	eg, err := h.sessions.Mahjong(c.GetParam("id"))
	if err != nil {
		return writeError(c, err)
	}
	if err := eg.Discard(c.Ctx(), req.Seat, tile); err != nil {
		return writeError(c, err)
	}
	c.Success(eg.Snapshot(req.Seat))
	return nil
}

func (h *Handler) ClaimHandler(c *http.Context) error {
	var req claimReq
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误")
		return nil
	}
	kind, err := mahjong.ParseClaimKind(req.Kind)
	if err != nil {
		return writeError(c, err)
	}
	eg, err := h.sessions.Mahjong(c.GetParam("id"))
	if err != nil {
		return writeError(c, err)
	}
	if err := eg.Claim(c.Ctx(), req.Seat, kind); err != nil {
		return writeError(c, err)
	}
	c.Success(eg.Snapshot(req.Seat))
	return nil
}

func (h *Handler) ResetMahjongHandler(c *http.Context) error {
	seat, err := seatParam(c)
	if err != nil {
		return writeError(c, err)
	}
	eg, err := h.sessions.Mahjong(c.GetParam("id"))
	if err != nil {
		return writeError(c, err)
	}
	if err := eg.Reset(c.Ctx()); err != nil {
		return writeError(c, err)
	}
	c.Success(eg.Snapshot(seat))
	return nil
}

// DiscardAdviceHandler 单人出牌建议，不依赖牌桌
func (h *Handler) DiscardAdviceHandler(c *http.Context) error {
	var req adviceReq
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误")
		return nil
	}
	var hand []mahjong.TileType
	if req.Hand != "" {
		parsed, err := mahjong.ParseHand(req.Hand)
		if err != nil {
			return writeError(c, err)
		}
		hand = parsed
	}
	for _, name := range req.Tiles {
		tt, err := mahjong.ParseTileType(name)
		if err != nil {
			return writeError(c, err)
		}
		hand = append(hand, tt)
	}
	rec, err := mahjong.AdviseDiscard(c.Ctx(), hand, h.sessions.DiscardAdvisor())
	if err != nil {
		return writeError(c, err)
	}
	c.Success(rec)
	return nil
}
