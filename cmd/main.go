package main

import "github.com/yungbote/ideascore-backend/internal/cli"

func main() {
	cli.Execute()
}
