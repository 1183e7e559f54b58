package platform

import "strings"

var clientMarkers = []string{
	"clash",
	"mihomo",
	"stash",
	"sing-box",
	"singbox",
	"sfa/",
	"sfi/",
	"sfm/",
	"v2ray",
	"xray",
	"hiddify",
	"streisand",
	"shadowrocket",
	"happ/",
	"nekobox",
	"nekoray",
	"karing",
	"flclash",
	"koala-clash",
	"prizrak-box",
	"v2box",
	"foxray",
	"surge",
	"quantumult",
	"loon",
}

var browserMarkers = []string{
	"mozilla/",
	"chrome/",
	"safari/",
	"firefox/",
	"edg/",
	"opera",
	"opr/",
	"yabrowser",
}

// IsBrowser сообщает, похож ли User-Agent на интерактивный браузер, а не на прокси-клиент.
func IsBrowser(userAgent string) bool {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return false
	}
	for _, marker := range clientMarkers {
		if strings.Contains(ua, marker) {
			return false
		}
	}
	for _, marker := range browserMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}
