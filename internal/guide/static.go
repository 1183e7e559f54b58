package guide

import (
	"subpage/internal/catalog"
	"subpage/internal/platform"
)

type staticKeys struct {
	installTitle       string
	installDescription string
	downloadButton     string
	addDescription     string
	connectDescription string
}

var staticTexts = map[platform.Platform]staticKeys{
	platform.Android: {
		installTitle:       "installation-guide.widget.install-clashmeta",
		installDescription: "installation-guide.widget.open-github",
		downloadButton:     "installation-guide.widget.download-github",
		addDescription:     "installation-guide.widget.add-subscription-description-clashmeta",
		connectDescription: "installation-guide.widget.connect-and-use-description-clashmeta",
	},
	platform.IOS: {
		installTitle:       "installation-guide.widget.install-singbox",
		installDescription: "installation-guide.widget.install-app-store-description",
		downloadButton:     "installation-guide.widget.open-app-store",
		addDescription:     "installation-guide.widget.add-ios-subscription-description",
		connectDescription: "installation-guide.widget.connect-and-use-description-singbox",
	},
	platform.PC: {
		installTitle:       "installation-guide.widget.install-flclash",
		installDescription: "installation-guide.widget.install-flclash-description",
		addDescription:     "installation-guide.widget.add-subscription-pc-description",
		connectDescription: "installation-guide.widget.select-server-flclash",
	},
}

// BuildStatic строит инструкцию с тремя фиксированными вкладками. Возвращает nil, если подписки нет.
func BuildStatic(in Input) *View {
	subURL, ok := in.subscriptionURL()
	if !ok {
		return nil
	}
	selected, ok := platform.Parse(string(in.Platform))
	if !ok {
		selected = platform.Default
	}
	view := &View{
		Variant:  VariantStatic,
		Lang:     in.Lang,
		Title:    in.t("installation-guide.widget.instrukciya", nil),
		Selected: selected,
		Tabs:     true,
	}
	for _, app := range catalog.Static() {
		view.Options = append(view.Options, Option{Platform: app.Platform, Label: in.platformLabel(app.Platform, "installation-guide.widget.pk")})
		view.Panels = append(view.Panels, in.staticPanel(app, subURL))
	}
	return view
}

func (in Input) staticPanel(app catalog.StaticApp, subURL string) Panel {
	keys := staticTexts[app.Platform]
	downloads := make([]Button, 0, len(app.Downloads))
	for _, d := range app.Downloads {
		text := d.Label
		if text == "" {
			text = in.t(keys.downloadButton, nil)
		}
		downloads = append(downloads, Button{
			Text:        text,
			URL:         d.Link,
			Kind:        ButtonExternal,
			Recommended: len(app.Downloads) > 1 && d.Target == in.DesktopTarget,
		})
	}
	return Panel{
		Platform: app.Platform,
		AppName:  app.Name,
		Steps: []Step{
			{
				Title:       in.t(keys.installTitle, nil),
				Description: in.t(keys.installDescription, nil),
				Buttons:     downloads,
			},
			{
				Title:       in.t("installation-guide.widget.add-subscription", nil),
				Description: in.t(keys.addDescription, nil),
				Buttons: []Button{{
					Text: in.t("installation-guide.widget.add-subscription-button", nil),
					URL:  in.Links.Link(app.URLScheme, subURL, false),
					Kind: ButtonDeepLink,
				}},
			},
			{
				Title:       in.t("installation-guide.widget.connect-and-use", nil),
				Description: in.t(keys.connectDescription, nil),
			},
		},
	}
}
