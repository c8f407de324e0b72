package main

import "github.com/weiawesome/uidgen/internal/cli"

func main() {
	cli.Run()
}
