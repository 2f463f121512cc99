// Command layoutctl drives the citation-layout engine from the command
// line: load a snapshot, build the layout hierarchy, run the force
// iteration, and print the resulting node positions.
package main

import "github.com/vseledkin/paperlayout/cmd/layoutctl/cmd"

func main() {
	cmd.Execute()
}
