package main

import "catalog/cmd/catalogctl/commands"

func main() {
	commands.Execute()
}
