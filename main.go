package main

import "pokemon-service/cmd"

func main() {
	cmd.Execute()
}
