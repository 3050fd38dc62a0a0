package main

import (
	"github.com/joho/godotenv"

	"ragbot/cmd"
)

func main() {
	// Best effort: a .env in the working directory supplements the process
	// environment. ~/.ragbot/.env is consulted separately by the config layer.
	_ = godotenv.Load()
	cmd.Execute()
}
