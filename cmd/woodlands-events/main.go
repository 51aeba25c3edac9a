package main

import "github.com/woodlandsapp/woodlands-events/internal/cli"

func main() {
	cli.Execute()
}
