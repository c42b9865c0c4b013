package main

import (
	"github.com/mchmarny/modeltrust/pkg/cli"
)

func main() {
	cli.Execute()
}
