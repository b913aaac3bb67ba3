// Package script defines the structured multi-scene script that drives a
// run, generation of the script from a user prompt via the language model,
// and the validation and persistence rules around it.
package script
