package beneficios

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/leoalmeida/desafio-fullstack/internal/domain"
)

// normalize remove os acentos (decomposição NFD + descarte das marcas
// combinantes) e baixa a caixa, para a busca tratar "Refeição" e "refeicao"
// como equivalentes. O transformer é construído a cada chamada porque não é
// seguro compartilhá-lo entre goroutines.
func normalize(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}

	return strings.ToLower(out)
}

// filterByNome mantém os benefícios cujo nome normalizado contém a consulta
// normalizada. Nunca muta a lista de origem.
func filterByNome(items []domain.Beneficio, query string) []domain.Beneficio {
	normalizedQuery := normalize(query)

	filtered := make([]domain.Beneficio, 0, len(items))
	for _, b := range items {
		if strings.Contains(normalize(b.Nome), normalizedQuery) {
			filtered = append(filtered, b)
		}
	}

	return filtered
}
