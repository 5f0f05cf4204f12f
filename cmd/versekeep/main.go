package main

import "github.com/conorfennell/versekeep/cmd/versekeep/root"

func main() {
	root.Execute()
}
