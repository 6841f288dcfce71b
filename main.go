package main

import (
	"fmt"
	"os"

	"github.com/gphunter1004/automation/cmd/classify"
	"github.com/gphunter1004/automation/cmd/export"
	"github.com/gphunter1004/automation/cmd/form"
	"github.com/gphunter1004/automation/cmd/normalize"
	"github.com/gphunter1004/automation/cmd/root"
	"github.com/gphunter1004/automation/cmd/scan"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(scan.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(normalize.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(form.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
