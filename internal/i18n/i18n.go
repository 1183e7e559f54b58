package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Lang задаёт код поддерживаемого языка интерфейса.
type Lang string

const (
	English Lang = "en"
	Persian Lang = "fa"
	Russian Lang = "ru"
)

// DefaultLang используется, когда ни одно предпочтение не подошло.
const DefaultLang = English

var supported = []Lang{English, Persian, Russian}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Persian, language.Russian})

// Supported возвращает языки в порядке, совпадающем с matcher.
func Supported() []Lang {
	return append([]Lang(nil), supported...)
}

// Dir возвращает направление письма для HTML.
func (l Lang) Dir() string {
	if l == Persian {
		return "rtl"
	}
	return "ltr"
}

// Match выбирает язык по списку предпочтений: значение ?lang=, Accept-Language, локаль ОС.
// Пустые и нераспознанные значения пропускаются.
func Match(preferences ...string) Lang {
	for _, pref := range preferences {
		pref = strings.TrimSpace(pref)
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(strings.ReplaceAll(pref, "_", "-"))
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, confidence := matcher.Match(tags...)
		if confidence == language.No {
			continue
		}
		return supported[idx]
	}
	return DefaultLang
}

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator возвращает тексты интерфейса по ключам.
type Translator struct {
	messages map[Lang]map[string]string
}

// Load читает встроенные словари.
func Load() (*Translator, error) {
	t := &Translator{messages: make(map[Lang]map[string]string, len(supported))}
	for _, lang := range supported {
		data, err := localeFS.ReadFile(path.Join("locales", string(lang)+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		dict := make(map[string]string)
		if err := yaml.Unmarshal(data, &dict); err != nil {
			return nil, fmt.Errorf("decode locale %s: %w", lang, err)
		}
		t.messages[lang] = dict
	}
	return t, nil
}

// MustLoad как Load, но паникует при ошибке. Словари встроены в бинарник, поэтому ошибка здесь означает дефект сборки.
func MustLoad() *Translator {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

// T возвращает перевод ключа. Порядок поиска: lang, en, сам ключ.
// vars подставляются вместо {name}.
func (t *Translator) T(lang Lang, key string, vars map[string]string) string {
	text := key
	if t != nil {
		if value, ok := t.messages[lang][key]; ok && value != "" {
			text = value
		} else if value, ok := t.messages[DefaultLang][key]; ok && value != "" {
			text = value
		}
	}
	if len(vars) == 0 {
		return text
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
