// Package cmd implements the command-line interface of fbstore. It provides a
// hierarchical command structure for working with the local feedback store and
// for running the reference feedback service.
//
// The package is organized into several subpackages:
//
//   - fb: Commands for feedback operations (list, add, resolve, sync, export, ...)
//   - serve: Command for starting and configuring the feedback service
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set with an environment variable FBSTORE_<FLAG>
// (e.g. FBSTORE_REMOTE_ENDPOINTS), or in a .env / .env.local file.
//
// See fbstore -help for a list of all commands.
package cmd
