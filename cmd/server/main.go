package main

import "gemura/internal/app/server"

func main() {
	server.Run()
}
