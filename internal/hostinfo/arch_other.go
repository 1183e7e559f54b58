//go:build !darwin

package hostinfo

import "runtime"

func nativeARM64() bool {
	return runtime.GOARCH == "arm64"
}
