package main

import "github.com/jask/jaskcalc/internal/cli"

func main() {
	cli.Execute()
}
