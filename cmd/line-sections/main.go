// Command line-sections serves and imports transit lines built as chains of
// station-to-station sections.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
