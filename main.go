package main

import "github.com/Mohsinsiddi/moon/cmd"

func main() {
	cmd.Execute()
}
