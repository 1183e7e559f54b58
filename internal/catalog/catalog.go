package catalog

import (
	"strings"

	"subpage/internal/platform"
)

// DefaultLang используется, когда перевода для выбранного языка нет.
const DefaultLang = "en"

// LocalizedText хранит текст по языкам: en, fa, ru.
type LocalizedText map[string]string

// Text возвращает перевод для lang, иначе английский вариант.
func (t LocalizedText) Text(lang string) string {
	if value := strings.TrimSpace(t[lang]); value != "" {
		return t[lang]
	}
	return t[DefaultLang]
}

// Empty сообщает, что ни одного перевода нет.
func (t LocalizedText) Empty() bool {
	for _, value := range t {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// Button описывает кнопку шага с внешней ссылкой.
type Button struct {
	Link string        `json:"buttonLink" yaml:"buttonLink"`
	Text LocalizedText `json:"buttonText" yaml:"buttonText"`
}

// Step описывает один шаг инструкции.
type Step struct {
	Title       LocalizedText `json:"title,omitempty" yaml:"title,omitempty"`
	Description LocalizedText `json:"description" yaml:"description"`
	Buttons     []Button      `json:"buttons,omitempty" yaml:"buttons,omitempty"`
}

// App описывает приложение-клиент и шаги его настройки.
type App struct {
	ID                                  string `json:"id" yaml:"id"`
	Name                                string `json:"name" yaml:"name"`
	IsFeatured                          bool   `json:"isFeatured,omitempty" yaml:"isFeatured,omitempty"`
	URLScheme                           string `json:"urlScheme" yaml:"urlScheme"`
	IsNeedBase64Encoding                bool   `json:"isNeedBase64Encoding,omitempty" yaml:"isNeedBase64Encoding,omitempty"`
	InstallationStep                    Step   `json:"installationStep" yaml:"installationStep"`
	AdditionalBeforeAddSubscriptionStep *Step  `json:"additionalBeforeAddSubscriptionStep,omitempty" yaml:"additionalBeforeAddSubscriptionStep,omitempty"`
	AddSubscriptionStep                 Step   `json:"addSubscriptionStep" yaml:"addSubscriptionStep"`
	AdditionalAfterAddSubscriptionStep  *Step  `json:"additionalAfterAddSubscriptionStep,omitempty" yaml:"additionalAfterAddSubscriptionStep,omitempty"`
	ConnectAndUseStep                   Step   `json:"connectAndUseStep" yaml:"connectAndUseStep"`
}

// PlatformConfig сопоставляет платформе упорядоченный список приложений.
type PlatformConfig struct {
	IOS     []App `json:"ios" yaml:"ios"`
	Android []App `json:"android" yaml:"android"`
	PC      []App `json:"pc" yaml:"pc"`
}

// Apps возвращает список приложений платформы.
func (c *PlatformConfig) Apps(p platform.Platform) []App {
	if c == nil {
		return nil
	}
	switch p {
	case platform.Android:
		return c.Android
	case platform.IOS:
		return c.IOS
	case platform.PC:
		return c.PC
	default:
		return nil
	}
}

// Has сообщает, доступна ли платформа: список приложений не пуст.
func (c *PlatformConfig) Has(p platform.Platform) bool {
	return len(c.Apps(p)) > 0
}

// Available возвращает доступные платформы в порядке отображения.
func (c *PlatformConfig) Available() []platform.Platform {
	var result []platform.Platform
	for _, p := range platform.All() {
		if c.Has(p) {
			result = append(result, p)
		}
	}
	return result
}

// First возвращает приложение, которое показывается для платформы: первое в списке.
func (c *PlatformConfig) First(p platform.Platform) (App, bool) {
	apps := c.Apps(p)
	if len(apps) == 0 {
		return App{}, false
	}
	return apps[0], true
}
