package main

import "cfgs/cmd"

func main() {
	cmd.Execute()
}
