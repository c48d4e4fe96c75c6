package main

import (
	"github.com/ktauqeer04/mock-interview/internal/cli"
	"github.com/ktauqeer04/mock-interview/internal/logging"
)

func main() {
	// Initialize logging
	logging.Init()
	cli.Execute()
}
