// feedwatch tails the live engagement feed over websocket. Handy for
// checking broadcasts during local development.
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

func main() {
	url := flag.String("url", "ws://localhost:8888/api/v1/feed/ws", "feed websocket url")
	initData := flag.String("init-data", "", "telegram init data for the Authorization header")
	flag.Parse()

	header := http.Header{}
	if *initData != "" {
		header.Add("Authorization", "Telegram "+*initData)
	}

	conn, _, err := websocket.DefaultDialer.Dial(*url, header)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer conn.Close()

	messageQueue := make(chan []byte)

	go func() {
		defer close(messageQueue)
		for {
			_, p, err := conn.ReadMessage()
			if err != nil {
				log.Println("read error:", err)
				return
			}

			messageQueue <- p
		}
	}()

	for message := range messageQueue {
		log.Printf("Received:\n%s\n", message)
	}
}
