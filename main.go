package main

import "workday-mcp/cmd"

func main() {
	cmd.Execute()
}
