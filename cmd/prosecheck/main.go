// Command prosecheck checks text files for grammar and style problems.
package main

import "github.com/prosekit-labs/prosecheck/internal/cli"

func main() {
	cli.Main()
}
