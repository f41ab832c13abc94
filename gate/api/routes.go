package api

import (
	"joy/common/http"
	"joy/runtime/dice"
	"joy/runtime/game"
)

// Handler 各路由共享的运行时组件
type Handler struct {
	sessions *game.SessionManager
	rooms    *game.RoomManager
	dice     *dice.Roller
	monitor  *game.Monitor
}

func NewHandler(sessions *game.SessionManager, rooms *game.RoomManager, roller *dice.Roller, monitor *game.Monitor) *Handler {
	return &Handler{sessions: sessions, rooms: rooms, dice: roller, monitor: monitor}
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(server *http.HttpServer, h *Handler) {
	server.GET("/ping", PingHandler)
	server.GET("/health", h.HealthHandler)

	api := server.Group("/api")
	{
		gomoku := api.Group("/gomoku")
		{
			gomoku.POST("", h.CreateGomokuHandler)
			gomoku.GET("/:id", h.GetGomokuHandler)
			gomoku.POST("/:id/move", h.GomokuMoveHandler)
			gomoku.POST("/:id/reset", h.ResetGomokuHandler)
			gomoku.DELETE("/:id", h.RemoveSessionHandler)
		}

		mahjong := api.Group("/mahjong")
		{
			mahjong.POST("", h.CreateMahjongHandler)
			mahjong.POST("/advice", h.DiscardAdviceHandler)
			mahjong.GET("/:id", h.GetMahjongHandler)
			mahjong.POST("/:id/discard", h.DiscardHandler)
			mahjong.POST("/:id/claim", h.ClaimHandler)
			mahjong.POST("/:id/reset", h.ResetMahjongHandler)
			mahjong.GET("/:id/ws", h.MahjongStreamHandler)
			mahjong.DELETE("/:id", h.RemoveSessionHandler)
		}

		diceGroup := api.Group("/dice")
		{
			diceGroup.POST("/roll", h.RollHandler)
			diceGroup.GET("/history", h.DiceHistoryHandler)
		}

		rooms := api.Group("/rooms")
		{
			rooms.POST("", h.CreateRoomHandler)
			rooms.POST("/join", h.JoinRoomHandler)
			rooms.DELETE("/:code", h.CloseRoomHandler)
		}
	}
}
