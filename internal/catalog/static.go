package catalog

import "subpage/internal/platform"

// Download описывает прямую ссылку на установщик.
// Target совпадает со значением hostinfo: windows, macos-arm64, macos-amd64, linux.
type Download struct {
	Target string
	Label  string
	Link   string
}

// StaticApp описывает приложение статического каталога с зафиксированными версиями.
type StaticApp struct {
	Platform  platform.Platform
	Name      string
	URLScheme string
	Downloads []Download
}

const (
	clashScheme   = "clash://install-config?url="
	singBoxScheme = "sing-box://import-remote-profile?url="

	clashMetaVersion = "2.11.7"
	flClashVersion   = "0.8.80"
)

// Static возвращает фиксированный набор: ClashMeta для Android, sing-box VT для iOS, FlClash для ПК.
func Static() []StaticApp {
	flClash := "https://github.com/chen08209/FlClash/releases/download/v" + flClashVersion + "/FlClash-" + flClashVersion
	return []StaticApp{
		{
			Platform:  platform.Android,
			Name:      "ClashMeta",
			URLScheme: clashScheme,
			Downloads: []Download{{
				Target: "android",
				Link: "https://github.com/MetaCubeX/ClashMetaForAndroid/releases/download/v" + clashMetaVersion +
					"/cmfa-" + clashMetaVersion + "-meta-universal-release.apk",
			}},
		},
		{
			Platform:  platform.IOS,
			Name:      "sing-box",
			URLScheme: singBoxScheme,
			Downloads: []Download{{
				Target: "ios",
				Link:   "https://apps.apple.com/app/sing-box-vt/id6673731168",
			}},
		},
		{
			Platform:  platform.PC,
			Name:      "FlClash",
			URLScheme: clashScheme,
			Downloads: []Download{
				{Target: "windows", Label: "Windows", Link: flClash + "-windows-amd64-setup.exe"},
				{Target: "macos-arm64", Label: "macOS Apple Silicon", Link: flClash + "-macos-arm64.dmg"},
				{Target: "macos-amd64", Label: "macOS Intel x64", Link: flClash + "-macos-amd64.dmg"},
				{Target: "linux", Label: "Linux", Link: flClash + "-linux-amd64.AppImage"},
			},
		},
	}
}
