package main

import (
	"github.com/joho/godotenv"

	"codex/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
