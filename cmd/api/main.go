package main

import "github.com/jointoit/events-api/cmd/api/cmd"

func main() {
	cmd.Execute()
}
