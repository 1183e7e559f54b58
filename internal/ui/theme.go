package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// guideTheme задаёт тёмную палитру страницы подписки с синими акцентами.
type guideTheme struct {
	base fyne.Theme
}

func newGuideTheme() fyne.Theme {
	return &guideTheme{base: theme.DefaultTheme()}
}

func (t *guideTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 26, G: 27, B: 30, A: 255}
	case theme.ColorNameButton, theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return color.NRGBA{R: 37, G: 38, B: 43, A: 255}
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return color.NRGBA{R: 25, G: 113, B: 194, A: 255}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 193, G: 194, B: 197, A: 255}
	case theme.ColorNameDisabled:
		return color.NRGBA{R: 92, G: 95, B: 102, A: 255}
	default:
		return t.base.Color(name, theme.VariantDark)
	}
}

func (t *guideTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *guideTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *guideTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameInnerPadding {
		return 6
	}
	return t.base.Size(name)
}
