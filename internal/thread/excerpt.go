package thread

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultExcerptLen — длина цитаты родителя в «в ответ @X» (в рунах).
const DefaultExcerptLen = 120

var strict = bluemonday.StrictPolicy()

// plainEntities раскрывает сущности, безопасные в тексте. &lt; и &gt; остаются
// экранированными, иначе экранированный текст снова станет разметкой.
var plainEntities = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`, "&quot;", `"`)

// Excerpt превращает тело комментария в короткий plain-text фрагмент:
// теги вырезаются, пробелы схлопываются, длинный текст обрезается с многоточием.
// Угловые скобки из текста остаются в виде &lt; и &gt;.
func Excerpt(body string, limit int) string {
	text := plainEntities.Replace(strict.Sanitize(body))
	text = strings.Join(strings.Fields(text), " ")

	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	cut := strings.TrimRight(string(runes[:limit]), " ")

	return cut + "…"
}
