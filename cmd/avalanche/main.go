// Package main provides the avalanche CLI.
package main

func main() {
	Execute()
}
