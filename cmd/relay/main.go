package main

import (
	"os"

	"quill.fyi/relay/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
