package main

import (
	"blogicum/cmd/blogctl/commands"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	commands.Execute()
}
