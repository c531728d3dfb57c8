// Package main provides the entry point for the smellscan CLI.
//
// smellscan examines Go source code for code smells: uncommunicative
// names, feature envy, long methods, long parameter lists and more.
//
// Usage:
//
//	smellscan scan ./...
//	smellscan scan --format markdown internal/
//
// See --help for all available options.
package main

// main is the entry point for smellscan.
func main() {
	Execute()
}
