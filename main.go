package main

import "festival-sync/cmd"

func main() {
	cmd.Execute()
}
