package main

import (
	"github.com/joho/godotenv"

	"newsbrief/internal/cli"
)

func main() {
	// Best effort: a missing .env just means plain environment lookups.
	_ = godotenv.Load()

	cli.Execute()
}
