// Package run models a single pipeline run: its identifier, its working
// directory under the output root, and the artifact paths other tooling
// relies on.
package run
