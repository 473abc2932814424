package main

import "github.com/calyptra/storefront/cmd"

func main() {
	cmd.Start()
}
