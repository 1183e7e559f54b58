package guide

import (
	"subpage/internal/catalog"
	"subpage/internal/platform"
)

// AvailablePlatforms возвращает платформы с непустым списком приложений.
func AvailablePlatforms(cfg *catalog.PlatformConfig) []platform.Platform {
	return cfg.Available()
}

// ResolvePlatform оставляет selected, если платформа доступна, иначе берёт первую доступную.
// ok == false, если доступных платформ нет.
func ResolvePlatform(selected platform.Platform, available []platform.Platform) (platform.Platform, bool) {
	if len(available) == 0 {
		return "", false
	}
	for _, p := range available {
		if p == selected {
			return p, true
		}
	}
	return available[0], true
}
