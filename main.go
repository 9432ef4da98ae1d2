// Package main is the entry point for the onelevel CLI.
package main

import "onelevel.dev/pkg/onelevel/cmd"

func main() {
	cmd.Execute()
}
