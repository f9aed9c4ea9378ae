//go:build windows

package banner

import (
	"os"

	"golang.org/x/sys/windows"
)

func isBlueBackground() bool {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(os.Stderr.Fd()), &info); err != nil {
		return false
	}

	const backgroundBlue = 0x0010
	return info.Attributes&backgroundBlue != 0
}
