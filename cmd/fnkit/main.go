package main

import "github.com/aalvaropc/fnkit/internal/cli"

func main() {
	cli.Execute()
}
