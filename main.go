package main

import "libranet/cmd"

func main() {
	cmd.Execute()
}
