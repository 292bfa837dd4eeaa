package main

import "github.com/Tiliavir/mfe/cmd"

func main() {
	cmd.Execute()
}
