package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"subpage/internal/guide"
	"subpage/internal/hostinfo"
	"subpage/internal/i18n"
	"subpage/internal/panel"
	"subpage/internal/platform"
	"subpage/internal/subscription"
)

//go:embed templates/page.html
var templateFS embed.FS

func parsePage() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/page.html")
}

type pageButton struct {
	Text        string
	URL         template.URL
	DeepLink    bool
	Recommended bool
}

type pageStep struct {
	Title       string
	Description string
	Buttons     []pageButton
}

type pageTab struct {
	Label  string
	Href   string
	Value  string
	Active bool
}

type pageData struct {
	Lang         string
	Dir          string
	Title        string
	Labels       map[string]string
	User         *subscription.User
	SubURL       string
	Unavailable  string
	GuideTitle   string
	Tabs         bool
	ShowSelector bool
	Placeholder  string
	Options      []pageTab
	AppName      string
	Steps        []pageStep
}

var pageLabels = []string{"username", "status", "days-left", "expires-at", "subscription-link"}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, resp *panel.Response) {
	query := r.URL.Query()
	lang := i18n.Match(query.Get("lang"), r.Header.Get("Accept-Language"))
	selected := platform.Detect(func() (string, error) { return r.UserAgent(), nil }, platform.FromUserAgent)
	if p, ok := platform.Parse(query.Get("platform")); ok {
		selected = p
	}

	info := panel.Info(resp)
	view := guide.Build(s.variant, guide.Input{
		Subscription:  info,
		Catalog:       s.catalog,
		Platform:      selected,
		Lang:          lang,
		Translator:    s.translator,
		Links:         s.links,
		DesktopTarget: hostinfo.FromUserAgent(r.UserAgent()),
	})

	data := s.newPageData(lang, info, view)
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Errorf("render page: %v", err)
		http.Error(w, "Request error.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) newPageData(lang i18n.Lang, info *subscription.Info, view *guide.View) pageData {
	data := pageData{
		Lang:   string(lang),
		Dir:    lang.Dir(),
		Title:  s.pageTitle,
		Labels: make(map[string]string, len(pageLabels)),
	}
	if data.Title == "" {
		data.Title = s.translator.T(lang, "page.title", nil)
	}
	for _, key := range pageLabels {
		data.Labels[key] = s.translator.T(lang, "page."+key, nil)
	}
	if info != nil {
		data.User = &info.User
		data.SubURL = info.SubscriptionURL
	}

	current, ok := view.Current()
	if !ok {
		data.Unavailable = s.translator.T(lang, "page.unavailable", nil)
		return data
	}
	data.GuideTitle = view.Title
	data.Tabs = view.Tabs
	data.ShowSelector = view.ShowSelector
	data.Placeholder = view.SelectPlaceholder
	for _, option := range view.Options {
		data.Options = append(data.Options, pageTab{
			Label:  option.Label,
			Href:   tabHref(option.Platform, lang),
			Value:  string(option.Platform),
			Active: option.Platform == view.Selected,
		})
	}
	data.AppName = current.AppName
	for _, step := range current.Steps {
		ps := pageStep{Title: step.Title, Description: step.Description}
		for _, b := range step.Buttons {
			ps.Buttons = append(ps.Buttons, pageButton{
				Text: b.Text,
				// Deep link схемы приложений (happ://, clash://) html/template иначе заменит на #ZgotmplZ.
				URL:         template.URL(b.URL),
				DeepLink:    b.Kind == guide.ButtonDeepLink,
				Recommended: b.Recommended,
			})
		}
		data.Steps = append(data.Steps, ps)
	}
	return data
}

func tabHref(p platform.Platform, lang i18n.Lang) string {
	values := url.Values{}
	values.Set("platform", string(p))
	values.Set("lang", string(lang))
	return "?" + values.Encode()
}
