package main

import "pitstop/cmd"

func main() {
	cmd.Execute()
}
