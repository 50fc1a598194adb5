package main

import "github.com/HSouheill/coffee_backend/cmd/cafectl/commands"

func main() {
	commands.Execute()
}
