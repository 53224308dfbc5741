// Command cascade inspects option catalogs from the command line: search the
// flattened catalog, convert between filter records and selection paths,
// render tags, describe the accepted record schema and filter JSON rows.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
