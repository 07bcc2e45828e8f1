package main

import "github.com/mselser95/hearthstone-cards/cmd"

func main() {
	cmd.Execute()
}
