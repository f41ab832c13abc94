package repository

import "errors"

var (
	// 掷骰记录相关错误
	ErrEmptySession = errors.New("dice session is empty")

	// 房间码相关错误
	ErrRoomNotFound = errors.New("room not found")
)
