package main

import "github.com/ospfsim/ospfsim/cmd"

func main() {
	cmd.Execute()
}
