// idfcheck parses IDF 3.0 board, panel and library files and checks that
// they reference each other consistently.
//
// Usage:
//
//	# Parse a single document and print a section summary
//	idfcheck parse board main.emn
//	idfcheck parse library parts.emp --output yaml --full
//
//	# Check an assembly: every placed package must be in the library and
//	# every board placed on the panel must be supplied
//	idfcheck check --library parts.emp --panel panel.emn main.emn daughter.emn
//
//	# Report every problem, including unclosed outline loops
//	idfcheck lint --library parts.emp main.emn
//
//	# Re-check on every save and serve /metrics
//	idfcheck watch --library parts.emp main.emn --listen 127.0.0.1:9464
//
//	# Inspect and prune the check-run history
//	idfcheck history list --outcome fail
//	idfcheck history prune
package main

func main() {
	Execute()
}
