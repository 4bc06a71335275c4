package main

import "github.com/fernwald/rtcgate/cmd"

func main() {
	cmd.Execute()
}
