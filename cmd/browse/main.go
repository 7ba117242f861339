package main

import (
	"os"

	"nyt_movies/cmd/browse/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
