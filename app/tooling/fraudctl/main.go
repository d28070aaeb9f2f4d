package main

import "github.com/ardanlabs/fraudledger/app/tooling/fraudctl/cmd"

func main() {
	cmd.Execute()
}
