package guide

import (
	"subpage/internal/catalog"
	"subpage/internal/platform"
)

var installTitleKeys = map[platform.Platform]string{
	platform.Android: "installation-guide.android.widget.install-and-open-app",
	platform.IOS:     "installation-guide.ios.widget.install-and-open-app",
	platform.PC:      "installation-guide.pc.widget.download-app",
}

// BuildCatalog строит инструкцию по внешнему каталогу приложений.
// Возвращает nil, если подписки нет или ни для одной платформы нет приложений.
func BuildCatalog(in Input) *View {
	subURL, ok := in.subscriptionURL()
	if !ok {
		return nil
	}
	available := AvailablePlatforms(in.Catalog)
	selected, ok := ResolvePlatform(in.Platform, available)
	if !ok {
		return nil
	}
	app, _ := in.Catalog.First(selected)

	view := &View{
		Variant:           VariantCatalog,
		Lang:              in.Lang,
		Title:             in.t("installation-guide.widget.installation", nil),
		Selected:          selected,
		ShowSelector:      len(available) > 1,
		SelectPlaceholder: in.t("installation-guide.widget.select-device", nil),
	}
	for _, p := range available {
		view.Options = append(view.Options, Option{Platform: p, Label: in.platformLabel(p, "installation-guide.widget.pc")})
	}
	view.Panels = []Panel{in.catalogPanel(selected, app, subURL)}
	return view
}

func (in Input) catalogPanel(p platform.Platform, app catalog.App, subURL string) Panel {
	lang := in.lang()
	steps := []Step{{
		Title:       in.t(installTitleKeys[p], map[string]string{"appName": app.Name}),
		Description: app.InstallationStep.Description.Text(lang),
		Buttons:     externalButtons(app.InstallationStep.Buttons, lang),
	}}
	if extra := app.AdditionalBeforeAddSubscriptionStep; extra != nil {
		steps = append(steps, in.additionalStep(*extra))
	}
	addButtons := []Button{{
		Text: in.t("installation-guide.widget.add-subscription-button", nil),
		URL:  in.Links.Link(app.URLScheme, subURL, app.IsNeedBase64Encoding),
		Kind: ButtonDeepLink,
	}}
	steps = append(steps, Step{
		Title:       in.t("installation-guide.widget.add-subscription", nil),
		Description: app.AddSubscriptionStep.Description.Text(lang),
		Buttons:     append(addButtons, externalButtons(app.AddSubscriptionStep.Buttons, lang)...),
	})
	if extra := app.AdditionalAfterAddSubscriptionStep; extra != nil {
		steps = append(steps, in.additionalStep(*extra))
	}
	steps = append(steps, Step{
		Title:       in.t("installation-guide.widget.connect-and-use", nil),
		Description: app.ConnectAndUseStep.Description.Text(lang),
		Buttons:     externalButtons(app.ConnectAndUseStep.Buttons, lang),
	})
	return Panel{Platform: p, AppName: app.Name, Steps: steps}
}

func (in Input) additionalStep(step catalog.Step) Step {
	lang := in.lang()
	title := step.Title.Text(lang)
	if title == "" {
		title = in.t("installation-guide.widget.additional-step", nil)
	}
	return Step{
		Title:       title,
		Description: step.Description.Text(lang),
		Buttons:     externalButtons(step.Buttons, lang),
	}
}

func externalButtons(buttons []catalog.Button, lang string) []Button {
	if len(buttons) == 0 {
		return nil
	}
	result := make([]Button, 0, len(buttons))
	for _, b := range buttons {
		result = append(result, Button{Text: b.Text.Text(lang), URL: b.Link, Kind: ButtonExternal})
	}
	return result
}
