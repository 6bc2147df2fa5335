package main

import "github.com/unilearn/lms-backend/cmd"

func main() {
	cmd.Execute()
}
