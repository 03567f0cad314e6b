package main

import "github.com/alexiusacademia/gofers/cmd"

func main() {
	cmd.Execute()
}
