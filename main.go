package main

import (
	"flatrec/cli"
)

func main() {
	cli.Start()
}
