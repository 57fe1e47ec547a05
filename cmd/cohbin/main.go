/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/cohbin/cmd/cohbin/cmd"
)

func main() {
	cmd.Execute()
}
