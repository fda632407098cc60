package main

import "github.com/nikbrunner/hive/cmd/hive/cmd"

func main() {
	cmd.Execute()
}
