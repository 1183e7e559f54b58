package guide

import (
	"fmt"
	"strings"

	"subpage/internal/catalog"
	"subpage/internal/deeplink"
	"subpage/internal/i18n"
	"subpage/internal/platform"
	"subpage/internal/subscription"
)

// Variant выбирает вид инструкции.
type Variant string

const (
	// VariantStatic: три фиксированные вкладки с зашитыми приложениями и версиями.
	VariantStatic Variant = "static"
	// VariantCatalog: приложения из внешней конфигурации, только доступные платформы.
	VariantCatalog Variant = "catalog"
)

// ParseVariant разбирает значение из конфигурации. Пустое значение означает catalog.
func ParseVariant(value string) (Variant, error) {
	switch Variant(strings.TrimSpace(strings.ToLower(value))) {
	case "", VariantCatalog:
		return VariantCatalog, nil
	case VariantStatic:
		return VariantStatic, nil
	default:
		return "", fmt.Errorf("unsupported guide variant %q", value)
	}
}

// ButtonKind отличает ссылку на загрузку от deep link в приложение.
type ButtonKind int

const (
	ButtonExternal ButtonKind = iota
	ButtonDeepLink
)

// Button описывает кнопку шага с готовой ссылкой.
type Button struct {
	Text        string
	URL         string
	Kind        ButtonKind
	Recommended bool
}

// Step описывает шаг инструкции с уже переведёнными текстами.
type Step struct {
	Title       string
	Description string
	Buttons     []Button
}

// Panel хранит содержимое вкладки одной платформы.
type Panel struct {
	Platform platform.Platform
	AppName  string
	Steps    []Step
}

// Option описывает пункт переключателя платформ.
type Option struct {
	Platform platform.Platform
	Label    string
}

// View описывает модель отрисовки инструкции, общую для HTML-страницы и окна fyne.
type View struct {
	Variant  Variant
	Lang     i18n.Lang
	Title    string
	Options  []Option
	Selected platform.Platform
	// Tabs: все платформы показываются вкладками (статический вариант).
	Tabs bool
	// ShowSelector: выпадающий список показывается, если доступно больше одной платформы.
	ShowSelector      bool
	SelectPlaceholder string
	Panels            []Panel
}

// Panel возвращает вкладку платформы.
func (v *View) Panel(p platform.Platform) (Panel, bool) {
	if v == nil {
		return Panel{}, false
	}
	for _, panel := range v.Panels {
		if panel.Platform == p {
			return panel, true
		}
	}
	return Panel{}, false
}

// Current возвращает вкладку выбранной платформы.
func (v *View) Current() (Panel, bool) {
	if v == nil {
		return Panel{}, false
	}
	return v.Panel(v.Selected)
}

// Input собирает внешние данные для построения View.
type Input struct {
	Subscription *subscription.Info
	Catalog      *catalog.PlatformConfig
	// Platform задаёт начальный выбор: результат определения ОС или явный выбор пользователя.
	Platform   platform.Platform
	Lang       i18n.Lang
	Translator *i18n.Translator
	Links      deeplink.Resolver
	// DesktopTarget помечает рекомендуемую сборку на вкладке ПК.
	DesktopTarget string
}

func (in Input) t(key string, vars map[string]string) string {
	return in.Translator.T(in.Lang, key, vars)
}

func (in Input) lang() string {
	if in.Lang == "" {
		return string(i18n.DefaultLang)
	}
	return string(in.Lang)
}

func (in Input) subscriptionURL() (string, bool) {
	if in.Subscription == nil {
		return "", false
	}
	url := in.Subscription.SubscriptionURL
	return url, strings.TrimSpace(url) != ""
}

func (in Input) platformLabel(p platform.Platform, pcKey string) string {
	if p == platform.PC {
		return in.t(pcKey, nil)
	}
	return p.Label()
}

// Build строит View выбранного варианта. nil означает, что отображать нечего.
func Build(variant Variant, in Input) *View {
	if variant == VariantStatic {
		return BuildStatic(in)
	}
	return BuildCatalog(in)
}
