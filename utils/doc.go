// Package utils holds small helpers shared by the importers, the realtime
// overlay and the HTTP layer:
//   - great-circle distances and metre rounding
//   - timestamp formatting and millisecond durations
package utils
