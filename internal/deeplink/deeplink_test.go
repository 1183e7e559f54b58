package deeplink

import (
	"encoding/base64"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const subURL = "https://sub.example.com/api/sub/AbC123?format=clash"

func TestBuildPlain(t *testing.T) {
	got := Build("clash://install-config?url=", subURL, false)
	assert.Equal(t, "clash://install-config?url="+subURL, got)
}

func TestBuildBase64(t *testing.T) {
	got := Build("happ://add/", subURL, true)
	want := "happ://add/" + base64.StdEncoding.EncodeToString([]byte(subURL))
	assert.Equal(t, want, got)
	assert.Equal(t, "x://aGk=", Build("x://", "hi", true))
}

func TestBuildDoesNotValidate(t *testing.T) {
	assert.Equal(t, "sing-box://import-remote-profile?url=not a url", Build("sing-box://import-remote-profile?url=", "not a url", false))
	assert.Equal(t, "", Build("", "", false))
}

func TestWrap(t *testing.T) {
	link := "clash://install-config?url=" + subURL
	assert.Equal(t, link, Wrap("", link))

	wrapped := Wrap("https://redirect.example.com/?redirect_to=", link)
	assert.Equal(t, "https://redirect.example.com/?redirect_to="+EscapeComponent(link), wrapped)
	assert.Equal(t,
		"https://redirect.example.com/?redirect_to=clash%3A%2F%2Finstall-config%3Furl%3Dhttps%3A%2F%2Fsub.example.com%2Fapi%2Fsub%2FAbC123%3Fformat%3Dclash",
		wrapped)
}

func TestEscapeComponentMatchesBrowser(t *testing.T) {
	assert.Equal(t, "AZaz09-_.!~*'()", EscapeComponent("AZaz09-_.!~*'()"))
	assert.Equal(t, "a%20b%2Bc%26d%3De%23f", EscapeComponent("a b+c&d=e#f"))
	assert.Equal(t, "%D0%BF%D1%80%D0%B8%D0%B2%D0%B5%D1%82", EscapeComponent("привет"))
}

func TestResolverLink(t *testing.T) {
	direct := Resolver{}
	assert.Equal(t, Build("s://", subURL, true), direct.Link("s://", subURL, true))

	redirected := Resolver{RedirectBase: "https://r.example/?u="}
	assert.Equal(t, "https://r.example/?u="+EscapeComponent("s://"+subURL), redirected.Link("s://", subURL, false))
}

type recordingOpener struct {
	opened []*url.URL
	err    error
}

func (o *recordingOpener) OpenURL(u *url.URL) error {
	o.opened = append(o.opened, u)
	return o.err
}

func TestOpen(t *testing.T) {
	opener := &recordingOpener{}
	require.NoError(t, Open(opener, "clash://install-config?url="+subURL))
	require.Len(t, opener.opened, 1)
	assert.Equal(t, "clash", opener.opened[0].Scheme)

	failing := &recordingOpener{err: errors.New("no handler")}
	err := Open(failing, "sing-box://import-remote-profile?url=x")
	require.Error(t, err)
	assert.ErrorIs(t, err, failing.err)

	assert.Error(t, Open(nil, "x://y"))
}

func TestOpenParseErrorHidesLink(t *testing.T) {
	err := Open(&recordingOpener{}, "clash://install config?url=%zz"+subURL)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "sub.example.com")
}

func TestBuildProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		scheme := rapid.String().Draw(t, "scheme")
		sub := rapid.String().Draw(t, "sub")

		if got := Build(scheme, sub, false); got != scheme+sub {
			t.Fatalf("Build(%q, %q, false) = %q", scheme, sub, got)
		}
		want := scheme + base64.StdEncoding.EncodeToString([]byte(sub))
		if got := Build(scheme, sub, true); got != want {
			t.Fatalf("Build(%q, %q, true) = %q, want %q", scheme, sub, got, want)
		}
	})
}

func TestWrapProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		link := rapid.String().Draw(t, "link")
		if got := Wrap("", link); got != link {
			t.Fatalf("Wrap without redirect changed %q to %q", link, got)
		}

		base := "https://r.example/?to=" + rapid.StringMatching(`[a-z0-9]*`).Draw(t, "suffix")
		got := Wrap(base, link)
		if got != base+EscapeComponent(link) {
			t.Fatalf("Wrap(%q, %q) = %q", base, link, got)
		}
	})
}

func TestEscapeComponentProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := rapid.String().Draw(t, "value")
		escaped := EscapeComponent(value)

		for i := 0; i < len(escaped); i++ {
			c := escaped[i]
			if c == '%' {
				if i+2 >= len(escaped) {
					t.Fatalf("truncated escape in %q", escaped)
				}
				i += 2
				continue
			}
			if !isUnreserved(c) {
				t.Fatalf("EscapeComponent(%q) left reserved byte %q", value, c)
			}
		}
		decoded, err := url.PathUnescape(escaped)
		if err != nil {
			t.Fatalf("PathUnescape(%q): %v", escaped, err)
		}
		if decoded != value {
			t.Fatalf("round trip %q -> %q -> %q", value, escaped, decoded)
		}
	})
}
