package ws

import (
	"github.com/gorilla/websocket"
)

type Client struct {
	ID       string
	TripCode string
	Conn     *websocket.Conn
	Send     chan []byte
}
