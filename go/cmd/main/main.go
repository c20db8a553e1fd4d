package main

import (
	"github.com/Hafsa-shoaib989/pmpcheck/go/cmd"

	_ "github.com/Hafsa-shoaib989/pmpcheck/go/cmd/check"
	_ "github.com/Hafsa-shoaib989/pmpcheck/go/cmd/convert"
	_ "github.com/Hafsa-shoaib989/pmpcheck/go/cmd/dump"
	_ "github.com/Hafsa-shoaib989/pmpcheck/go/cmd/repl"
)

func main() { cmd.Main() }
