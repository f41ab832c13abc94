package game

import "errors"

var (
	ErrSessionNotFound = errors.New("game session not found")
	ErrUnknownMode     = errors.New("unknown game mode")
	ErrBadRoomCode     = errors.New("room code must be three digits 100-999")
	ErrNoRoomCode      = errors.New("no free room code")
)
