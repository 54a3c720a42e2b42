package main

import "hrmadmin/internal/app/server"

func main() {
	server.Run()
}
