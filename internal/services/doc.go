// Package services holds cross-cutting helpers shared by pipeline stages and
// provider clients: the error taxonomy with its sentinel markers, and context
// annotations (run ID, stage, scene index, correlation ID) that feed
// structured logging.
package services
