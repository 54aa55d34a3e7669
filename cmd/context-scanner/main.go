package main

import "github.com/petrarca/context-scanner/internal/cmd"

func main() {
	cmd.Execute()
}
