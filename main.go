package main

import "github.com/pitchplot/pitchplot-cli/cmd"

func main() {
	cmd.Execute()
}
