package ui

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subpage/internal/catalog"
	"subpage/internal/guide"
	"subpage/internal/i18n"
	"subpage/internal/logging"
	"subpage/internal/platform"
	"subpage/internal/subscription"
)

const subURL = "https://sub.example.com/api/sub/AbC123"

type recordingOpener struct {
	opened []string
	err    error
}

func (r *recordingOpener) OpenURL(u *url.URL) error {
	r.opened = append(r.opened, u.String())
	return r.err
}

func builder(variant guide.Variant, cfg *catalog.PlatformConfig, info *subscription.Info) func(platform.Platform) *guide.View {
	translator := i18n.MustLoad()
	return func(p platform.Platform) *guide.View {
		return guide.Build(variant, guide.Input{
			Subscription:  info,
			Catalog:       cfg,
			Platform:      p,
			Lang:          i18n.English,
			Translator:    translator,
			DesktopTarget: "linux",
		})
	}
}

func twoPlatforms() *catalog.PlatformConfig {
	return &catalog.PlatformConfig{
		IOS: []catalog.App{{Name: "Happ", URLScheme: "happ://add/"}},
		PC:  []catalog.App{{Name: "FlClash", URLScheme: "clash://install-config?url="}},
	}
}

func buttons(obj fyne.CanvasObject) []*widget.Button {
	var out []*widget.Button
	switch o := obj.(type) {
	case *widget.Button:
		out = append(out, o)
	case *fyne.Container:
		for _, child := range o.Objects {
			out = append(out, buttons(child)...)
		}
	case *widget.Card:
		out = append(out, buttons(o.Content)...)
	case *container.Scroll:
		out = append(out, buttons(o.Content)...)
	case *container.AppTabs:
		for _, item := range o.Items {
			out = append(out, buttons(item.Content)...)
		}
	}
	return out
}

func newManager(t *testing.T, opts Options) *Manager {
	t.Helper()
	opts.App = test.NewTempApp(t)
	m, err := NewManager(opts)
	require.NoError(t, err)
	return m
}

func TestNewManagerValidates(t *testing.T) {
	_, err := NewManager(Options{})
	assert.Error(t, err)
	_, err = NewManager(Options{App: test.NewTempApp(t)})
	assert.Error(t, err)
}

func TestCatalogSelectorSwitchesPlatform(t *testing.T) {
	info := &subscription.Info{SubscriptionURL: subURL}
	m := newManager(t, Options{
		Build:   builder(guide.VariantCatalog, twoPlatforms(), info),
		Initial: platform.Android,
		Opener:  &recordingOpener{},
	})

	// android недоступен, берётся первая доступная платформа
	assert.Equal(t, platform.IOS, m.Selected())
	require.NotNil(t, m.selector)
	assert.Equal(t, "iOS", m.selector.Selected)
	assert.Equal(t, "Installation", m.title.Text)

	m.selector.SetSelected("PC")
	assert.Equal(t, platform.PC, m.Selected())
	current, ok := m.View().Current()
	require.True(t, ok)
	assert.Equal(t, "FlClash", current.AppName)
}

func TestSinglePlatformHasNoSelector(t *testing.T) {
	cfg := &catalog.PlatformConfig{Android: []catalog.App{{Name: "v2rayNG", URLScheme: "v2rayng://install-config?url="}}}
	m := newManager(t, Options{
		Build:   builder(guide.VariantCatalog, cfg, &subscription.Info{SubscriptionURL: subURL}),
		Initial: platform.PC,
	})
	assert.Nil(t, m.selector)
	assert.Equal(t, platform.Android, m.Selected())
}

func TestDeepLinkButtonOpensLink(t *testing.T) {
	opener := &recordingOpener{}
	m := newManager(t, Options{
		Build:   builder(guide.VariantCatalog, twoPlatforms(), &subscription.Info{SubscriptionURL: subURL}),
		Initial: platform.IOS,
		Opener:  opener,
	})

	var deepLink *widget.Button
	for _, b := range buttons(m.body) {
		if b.Text == "Add subscription" {
			deepLink = b
		}
	}
	require.NotNil(t, deepLink)
	assert.Equal(t, widget.HighImportance, deepLink.Importance)
	test.Tap(deepLink)
	assert.Equal(t, []string{"happ://add/" + subURL}, opener.opened)
}

func TestOpenErrorIsReported(t *testing.T) {
	var logs strings.Builder
	opener := &recordingOpener{err: errors.New("no handler for scheme")}
	m := newManager(t, Options{
		Build:  builder(guide.VariantCatalog, twoPlatforms(), &subscription.Info{SubscriptionURL: subURL}),
		Opener: opener,
		Logger: logging.NewWriter(&logs, logging.LevelDebug),
	})
	m.open("clash://install-config?url=" + subURL)
	assert.Len(t, opener.opened, 1)
	assert.Contains(t, logs.String(), "open clash link")
	assert.NotContains(t, logs.String(), subURL)
}

func TestOpenLogsSchemeOnly(t *testing.T) {
	var logs strings.Builder
	m := newManager(t, Options{
		Build:  builder(guide.VariantCatalog, twoPlatforms(), &subscription.Info{SubscriptionURL: subURL}),
		Opener: &recordingOpener{},
		Logger: logging.NewWriter(&logs, logging.LevelDebug),
	})
	m.open("happ://add/" + subURL)
	assert.Contains(t, logs.String(), "opened happ link")
	assert.NotContains(t, logs.String(), "sub.example.com")
	assert.Equal(t, "unknown", linkScheme("no-scheme"))
}

func TestStaticVariantUsesTabs(t *testing.T) {
	m := newManager(t, Options{
		Build:   builder(guide.VariantStatic, nil, &subscription.Info{SubscriptionURL: subURL}),
		Initial: platform.PC,
		Opener:  &recordingOpener{},
	})
	require.NotNil(t, m.tabs)
	require.Len(t, m.tabs.Items, 3)
	assert.Equal(t, "Android", m.tabs.Items[0].Text)
	assert.Equal(t, "PC", m.tabs.Items[2].Text)
	assert.Equal(t, 2, m.tabs.SelectedIndex())

	m.tabs.SelectIndex(0)
	assert.Equal(t, platform.Android, m.Selected())

	var linux *widget.Button
	for _, b := range buttons(m.tabs.Items[2].Content) {
		if b.Text == "Linux" {
			linux = b
		}
	}
	require.NotNil(t, linux)
	assert.Equal(t, widget.HighImportance, linux.Importance)
}

func TestWithoutSubscriptionShowsUnavailable(t *testing.T) {
	m := newManager(t, Options{
		Build:       builder(guide.VariantCatalog, twoPlatforms(), nil),
		Unavailable: "nothing to show",
	})
	assert.Nil(t, m.View())
	require.Len(t, m.body.Objects, 1)
	label, ok := m.body.Objects[0].(*widget.Label)
	require.True(t, ok)
	assert.Equal(t, "nothing to show", label.Text)
}

func TestRenderPicksUpNewSubscription(t *testing.T) {
	var info *subscription.Info
	m := newManager(t, Options{
		Build: func(p platform.Platform) *guide.View {
			if info == nil {
				return nil
			}
			return builder(guide.VariantCatalog, twoPlatforms(), info)(p)
		},
		Initial: platform.PC,
	})
	assert.Nil(t, m.View())

	info = &subscription.Info{SubscriptionURL: subURL}
	m.render(m.Selected())
	require.NotNil(t, m.View())
	assert.Equal(t, platform.PC, m.Selected())
}
