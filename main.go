package main

import (
	"github.com/thereayou/taskboard/cmd/server"
)

func main() {
	server.NewServer().Run()
}
