package subtitles

import "fmt"

// FormatTimestamp renders seconds as the ASS timestamp form H:MM:SS.cc with
// centisecond precision. Hours are unpadded; minutes, seconds, and
// centiseconds are zero-padded to two digits. Negative inputs clamp to zero.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	centis := int64(seconds*100 + 0.5)
	hours := centis / 360000
	centis -= hours * 360000
	minutes := centis / 6000
	centis -= minutes * 6000
	secs := centis / 100
	centis -= secs * 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}
