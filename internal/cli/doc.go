// SPDX-License-Identifier: EPL-2.0

// Package cli implements the audproc command line: one subcommand per
// processing step, configuration from flags, $HOME/.audproc.yaml and
// AUDPROC_* environment variables, and a single JSON result on stdout.
package cli
