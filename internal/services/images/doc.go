// Package images calls the image-generation provider and persists the
// resulting image for a scene.
package images
