package main

import (
	"ta-engine/internal/cli"
)

func main() {
	cli.Execute()
}
