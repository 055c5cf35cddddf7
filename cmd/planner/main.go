// Command planner is the command-line companion to the server.
package main

import "github.com/sakif/health-planner/internal/cli"

func main() {
	cli.Execute()
}
