// Command gesturereplay runs scripted pointer input against a node layout and
// prints every recognized gesture as a JSON line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
