package main

import "wireroute/cmd"

func main() {
	cmd.Execute()
}
