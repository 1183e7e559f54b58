package deeplink

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Build склеивает схему приложения и ссылку подписки. При encode ссылка предварительно кодируется в base64.
// Корректность результата не проверяется.
func Build(scheme, subscriptionURL string, encode bool) string {
	if encode {
		return scheme + base64.StdEncoding.EncodeToString([]byte(subscriptionURL))
	}
	return scheme + subscriptionURL
}

// Wrap пропускает ссылку через внешний redirect-сервис, если он задан.
func Wrap(redirectBase, link string) string {
	if redirectBase == "" {
		return link
	}
	return redirectBase + EscapeComponent(link)
}

// Resolver строит итоговые ссылки с учётом redirect-сервиса из окружения.
type Resolver struct {
	RedirectBase string
}

// Link возвращает ссылку, которую нужно открыть для импорта подписки в приложение.
func (r Resolver) Link(scheme, subscriptionURL string, encode bool) string {
	return Wrap(r.RedirectBase, Build(scheme, subscriptionURL, encode))
}

// Opener открывает URL во внешнем обработчике. fyne.App удовлетворяет этому интерфейсу.
type Opener interface {
	OpenURL(u *url.URL) error
}

// Open передаёт готовую ссылку обработчику ОС.
func Open(opener Opener, link string) error {
	if opener == nil {
		return fmt.Errorf("opener is nil")
	}
	parsed, err := url.Parse(link)
	if err != nil {
		// *url.Error содержит саму ссылку, наружу отдаётся только причина.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("parse link: %w", err)
	}
	if err := opener.OpenURL(parsed); err != nil {
		return fmt.Errorf("open %s: %w", parsed.Scheme, err)
	}
	return nil
}

const upperhex = "0123456789ABCDEF"

// EscapeComponent кодирует строку так же, как encodeURIComponent в браузере:
// без изменений остаются только A-Z a-z 0-9 и - _ . ! ~ * ' ( ).
func EscapeComponent(value string) string {
	var b strings.Builder
	b.Grow(len(value) * 3)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
