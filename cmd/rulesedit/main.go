package main

import "rulesedit/cmd/rulesedit/cmd"

func main() {
	cmd.Execute()
}
