package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subpage/internal/platform"
)

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "app-config.json"))
	require.NoError(t, err)

	assert.Len(t, cfg.IOS, 2)
	assert.Len(t, cfg.Android, 1)
	assert.Empty(t, cfg.PC)
	assert.Equal(t, []platform.Platform{platform.Android, platform.IOS}, cfg.Available())
	assert.False(t, cfg.Has(platform.PC))

	app, ok := cfg.First(platform.IOS)
	require.True(t, ok)
	assert.Equal(t, "Happ", app.Name)
	assert.True(t, app.IsFeatured)
	assert.Equal(t, "happ://add/", app.URLScheme)
	require.Len(t, app.InstallationStep.Buttons, 1)
	assert.Equal(t, "Открыть в App Store", app.InstallationStep.Buttons[0].Text.Text("ru"))

	android, ok := cfg.First(platform.Android)
	require.True(t, ok)
	assert.True(t, android.IsNeedBase64Encoding)
	require.NotNil(t, android.AdditionalBeforeAddSubscriptionStep)
	assert.Nil(t, android.AdditionalAfterAddSubscriptionStep)

	_, ok = cfg.First(platform.PC)
	assert.False(t, ok)
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "app-config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []platform.Platform{platform.PC}, cfg.Available())
	app, ok := cfg.First(platform.PC)
	require.True(t, ok)
	require.NotNil(t, app.AdditionalAfterAddSubscriptionStep)
	assert.Equal(t, "Enable TUN", app.AdditionalAfterAddSubscriptionStep.Title.Text("fa"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodePresenceChecks(t *testing.T) {
	_, err := Decode([]byte(`{"ios":[{"name":"","urlScheme":"x://"}]}`), ".json")
	assert.ErrorContains(t, err, "name is required")

	_, err = Decode([]byte(`{"pc":[{"name":"App","urlScheme":""}]}`), ".json")
	assert.ErrorContains(t, err, "urlScheme is required")

	_, err = Decode([]byte(`{"pc":[{"name":"App","urlScheme":"x://","installationStep":{"buttons":[{"buttonLink":" "}]}}]}`), ".json")
	assert.ErrorContains(t, err, "buttonLink is required")

	_, err = Decode([]byte(`{not json`), ".json")
	assert.Error(t, err)
}

func TestDecodeEmptyIsAllowed(t *testing.T) {
	cfg, err := Decode([]byte(`{"ios":[],"android":[],"pc":[]}`), ".json")
	require.NoError(t, err)
	assert.Empty(t, cfg.Available())
}

func TestNilConfig(t *testing.T) {
	var cfg *PlatformConfig
	assert.Nil(t, cfg.Apps(platform.IOS))
	assert.False(t, cfg.Has(platform.Android))
	assert.Empty(t, cfg.Available())
}

func TestLocalizedTextFallback(t *testing.T) {
	text := LocalizedText{"en": "Hello", "ru": "Привет", "fa": "  "}
	assert.Equal(t, "Привет", text.Text("ru"))
	assert.Equal(t, "Hello", text.Text("fa"))
	assert.Equal(t, "Hello", text.Text("de"))
	assert.False(t, text.Empty())
	assert.True(t, LocalizedText{"en": " "}.Empty())
	assert.True(t, LocalizedText(nil).Empty())
}

func TestStatic(t *testing.T) {
	apps := Static()
	require.Len(t, apps, 3)
	assert.Equal(t, platform.Android, apps[0].Platform)
	assert.Equal(t, "clash://install-config?url=", apps[0].URLScheme)
	assert.Contains(t, apps[0].Downloads[0].Link, "cmfa-2.11.7-meta-universal-release.apk")
	assert.Equal(t, "sing-box://import-remote-profile?url=", apps[1].URLScheme)
	assert.Equal(t, "https://apps.apple.com/app/sing-box-vt/id6673731168", apps[1].Downloads[0].Link)
	require.Len(t, apps[2].Downloads, 4)
	assert.Equal(t, "https://github.com/chen08209/FlClash/releases/download/v0.8.80/FlClash-0.8.80-macos-arm64.dmg", apps[2].Downloads[1].Link)
}
