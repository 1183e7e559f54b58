package platform

import "strings"

// Platform описывает целевую категорию устройств, для которой показывается инструкция.
type Platform string

const (
	Android Platform = "android"
	IOS     Platform = "ios"
	PC      Platform = "pc"
)

// Default используется, когда платформу определить не удалось.
const Default = PC

var order = []Platform{Android, IOS, PC}

// All возвращает платформы в порядке отображения.
func All() []Platform {
	return append([]Platform(nil), order...)
}

// Parse разбирает значение из запроса или конфигурации. "desktop" принимается как синоним pc.
func Parse(value string) (Platform, bool) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "android":
		return Android, true
	case "ios":
		return IOS, true
	case "pc", "desktop":
		return PC, true
	default:
		return "", false
	}
}

// Label возвращает подпись платформы для переключателя. Для pc подпись локализуется вызывающей стороной.
func (p Platform) Label() string {
	switch p {
	case Android:
		return "Android"
	case IOS:
		return "iOS"
	default:
		return "PC"
	}
}

func (p Platform) String() string {
	return string(p)
}

// FromUserAgent выбирает платформу по строке User-Agent.
func FromUserAgent(userAgent string) Platform {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "android"):
		return Android
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		return IOS
	default:
		return Default
	}
}

// FromOS переводит результат определения ОС (android, ios, macos, windows, linux, undetermined) в платформу.
func FromOS(name string) Platform {
	switch strings.TrimSpace(strings.ToLower(name)) {
	case "android":
		return Android
	case "ios":
		return IOS
	default:
		return Default
	}
}

// Probe возвращает сырое значение для определения платформы: User-Agent или имя ОС.
type Probe func() (string, error)

// Detect запускает probe и сопоставляет результат через mapper.
// Ошибка или panic внутри probe дают платформу по умолчанию.
func Detect(probe Probe, mapper func(string) Platform) (result Platform) {
	result = Default
	if probe == nil || mapper == nil {
		return result
	}
	defer func() {
		if r := recover(); r != nil {
			result = Default
		}
	}()
	value, err := probe()
	if err != nil {
		return Default
	}
	return mapper(value)
}
