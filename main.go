package main

import "github.com/mgrude/ccstatus/cmd"

func main() {
	cmd.Execute()
}
