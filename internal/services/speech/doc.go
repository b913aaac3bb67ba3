// Package speech calls the text-to-speech provider and persists the
// narrated audio for a scene.
package speech
