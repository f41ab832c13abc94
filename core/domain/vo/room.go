package vo

// RoomTicket 房间配对结果，房主与加入者拿到同一个房间码
type RoomTicket struct {
	Code   string `json:"roomCode"`
	IsHost bool   `json:"isHost"`
	HostID string `json:"hostId"`
}
