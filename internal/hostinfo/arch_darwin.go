//go:build darwin

package hostinfo

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// nativeARM64 учитывает Rosetta: amd64-сборка на Apple Silicon всё равно видит hw.optional.arm64 = 1.
func nativeARM64() bool {
	if runtime.GOARCH == "arm64" {
		return true
	}
	value, err := unix.SysctlUint32("hw.optional.arm64")
	if err != nil {
		return false
	}
	return value == 1
}
