package main

import "yt2audio/cmd"

func main() {
	cmd.Execute()
}
