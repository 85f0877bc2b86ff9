package main

import "github.com/LogicCuteGuy/WASMRS2USharp-sub001/cmd"

func main() {
	cmd.Execute()
}
