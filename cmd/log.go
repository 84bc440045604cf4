package cmd

import (
	"io"
	"log"
)

func init() {
	// Silence the default logger.
	log.SetOutput(io.Discard)
}
