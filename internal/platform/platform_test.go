package platform

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFromUserAgent(t *testing.T) {
	cases := []struct {
		name string
		ua   string
		want Platform
	}{
		{"android phone", "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Chrome/126.0 Mobile Safari/537.36", Android},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148", IOS},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)", IOS},
		{"upper case", "ANDROID", Android},
		{"windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0", PC},
		{"mac", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_5) Safari/605.1.15", PC},
		{"empty", "", PC},
		{"garbage", "\x00\xff???", PC},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FromUserAgent(tc.ua))
		})
	}
}

func TestFromOS(t *testing.T) {
	assert.Equal(t, Android, FromOS("android"))
	assert.Equal(t, IOS, FromOS("IOS"))
	for _, name := range []string{"macos", "darwin", "windows", "linux", "undetermined", ""} {
		assert.Equal(t, PC, FromOS(name), name)
	}
}

func TestDetectFailsOpen(t *testing.T) {
	panicking := func() (string, error) { panic("navigator is undefined") }
	failing := func() (string, error) { return "", errors.New("no user agent") }
	working := func() (string, error) { return "Mozilla/5.0 (iPhone)", nil }

	assert.Equal(t, PC, Detect(panicking, FromUserAgent))
	assert.Equal(t, PC, Detect(failing, FromUserAgent))
	assert.Equal(t, PC, Detect(nil, FromUserAgent))
	assert.Equal(t, PC, Detect(working, nil))
	assert.Equal(t, IOS, Detect(working, FromUserAgent))
}

func TestParse(t *testing.T) {
	p, ok := Parse("desktop")
	assert.True(t, ok)
	assert.Equal(t, PC, p)

	p, ok = Parse(" Android ")
	assert.True(t, ok)
	assert.Equal(t, Android, p)

	_, ok = Parse("symbian")
	assert.False(t, ok)
}

func TestAllOrderIsStable(t *testing.T) {
	all := All()
	assert.Equal(t, []Platform{Android, IOS, PC}, all)
	all[0] = PC
	assert.Equal(t, Android, All()[0])
}

func TestIsBrowser(t *testing.T) {
	assert.True(t, IsBrowser("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/126.0 Safari/537.36"))
	assert.True(t, IsBrowser("Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) Version/17.5 Mobile/15E148 Safari/604.1"))
	assert.False(t, IsBrowser("ClashMetaForAndroid/2.11.7.Meta"))
	assert.False(t, IsBrowser("SFA/1.9.0 (Android 14; sing-box 1.9.0)"))
	assert.False(t, IsBrowser("Happ/1.0 Mozilla/5.0"))
	assert.False(t, IsBrowser("v2rayNG/1.8.19"))
	assert.False(t, IsBrowser("curl/8.5.0"))
	assert.False(t, IsBrowser(""))
}

func TestFromUserAgentProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ua := rapid.String().Draw(t, "ua")
		lower := strings.ToLower(ua)
		got := FromUserAgent(ua)

		switch {
		case strings.Contains(lower, "android"):
			if got != Android {
				t.Fatalf("FromUserAgent(%q) = %s, want android", ua, got)
			}
		case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"):
			if got != IOS {
				t.Fatalf("FromUserAgent(%q) = %s, want ios", ua, got)
			}
		default:
			if got != PC {
				t.Fatalf("FromUserAgent(%q) = %s, want pc", ua, got)
			}
		}
	})
}

func TestFromUserAgentAndroidWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.String().Draw(t, "prefix")
		suffix := rapid.String().Draw(t, "suffix")
		marker := rapid.SampledFrom([]string{"Android", "ANDROID", "android"}).Draw(t, "marker")
		ua := prefix + marker + " iPhone " + suffix
		if got := FromUserAgent(ua); got != Android {
			t.Fatalf("FromUserAgent(%q) = %s, want android", ua, got)
		}
	})
}

func TestDetectNeverFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := rapid.String().Draw(t, "value")
		mode := rapid.IntRange(0, 2).Draw(t, "mode")
		probe := func() (string, error) {
			switch mode {
			case 0:
				panic(value)
			case 1:
				return "", errors.New(value)
			default:
				return value, nil
			}
		}
		got := Detect(probe, FromUserAgent)
		if mode < 2 && got != PC {
			t.Fatalf("failing probe gave %s, want pc", got)
		}
		if _, ok := Parse(string(got)); !ok {
			t.Fatalf("Detect returned unknown platform %q", got)
		}
	})
}
