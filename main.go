package main

import "github.com/pgdebus/scenewalk/cmd"

func main() {
	cmd.Execute()
}
