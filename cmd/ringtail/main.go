// Command ringtail prints the end of its inputs using a fixed amount of memory.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
