package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrUnauthorized    = errors.New("unauthorized")
)
