package main

import "pricelens/cmd"

func main() {
	cmd.Execute()
}
