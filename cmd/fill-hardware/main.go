package main

import "github.com/OpenTraceLab/hwmap/cmd/fill-hardware/cmd"

func main() {
	cmd.Execute()
}
