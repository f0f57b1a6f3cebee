package main

import "github.com/OpenTraceLab/hwmap/cmd/fill-hardware-map/cmd"

func main() {
	cmd.Execute()
}
