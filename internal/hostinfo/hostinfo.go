// Package hostinfo определяет, какую сборку десктопного клиента рекомендовать.
package hostinfo

import (
	"runtime"
	"strings"
)

// Значения совпадают с catalog.Download.Target.
const (
	TargetWindows    = "windows"
	TargetLinux      = "linux"
	TargetMacOSARM64 = "macos-arm64"
	TargetMacOSAMD64 = "macos-amd64"
)

// DesktopTarget возвращает сборку для текущей машины или пустую строку для мобильных ОС.
func DesktopTarget() string {
	return targetFor(runtime.GOOS, nativeARM64())
}

func targetFor(goos string, arm64 bool) string {
	switch goos {
	case "windows":
		return TargetWindows
	case "linux", "freebsd", "openbsd", "netbsd":
		return TargetLinux
	case "darwin":
		if arm64 {
			return TargetMacOSARM64
		}
		return TargetMacOSAMD64
	default:
		return ""
	}
}

// FromUserAgent оценивает сборку по User-Agent на стороне сервера. Архитектуру Mac по нему не узнать, поэтому для macOS результат пуст.
func FromUserAgent(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "android"), strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		return ""
	case strings.Contains(ua, "windows"):
		return TargetWindows
	case strings.Contains(ua, "linux"), strings.Contains(ua, "x11"):
		return TargetLinux
	default:
		return ""
	}
}
