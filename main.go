package main

import "github.com/jsphweid/pixelroll/cmd"

func main() {
	cmd.Execute()
}
