// Package stage defines the contract each pipeline stage implements and the
// shared state a run threads through its stages.
package stage
