package main

import "mangafandb/cmd/cli/command"

func main() {
	command.Execute()
}
