package main

import "github.com/caretrail/docnotary/cmd"

func main() {
	cmd.Execute()
}
