package main

import (
	"os"

	"github.com/Hafsa-shoaib989/pmpcheck/go/cmd/check"
)

func main() {
	os.Exit(check.NewCheckCmd().Run(os.Args))
}
