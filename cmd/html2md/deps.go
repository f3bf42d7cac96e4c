package main

import (
	"io"
	"os"
)

// Dependencies groups the process-level collaborators so commands can be
// tested with in-memory streams and a fake environment.
type Dependencies struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
}

func defaultDependencies() *Dependencies {
	return &Dependencies{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}
