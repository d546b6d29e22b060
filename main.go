package main

import "task-manager/cmd"

func main() {
	cmd.Execute()
}
