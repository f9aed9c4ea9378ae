//go:build !windows

package banner

import (
	"os"
	"strings"
)

// isBlueBackground reads the background index from COLORFGBG.
func isBlueBackground() bool {
	parts := strings.Split(os.Getenv("COLORFGBG"), ";")
	bg := strings.TrimSpace(parts[len(parts)-1])

	// 4 is blue, 12 bright blue.
	return bg == "4" || bg == "12"
}
