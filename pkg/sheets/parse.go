package sheets

import (
	"regexp"
	"strings"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
)

// The volunteers who maintain the spreadsheet rename columns freely, so every
// column is located by case-insensitive substring match instead of position.
var (
	// "id" goes last: it is a substring of "apellidos".
	idTerms      = []string{"socio", "número", "numero", "id"}
	nameTerms    = []string{"nombre", "name", "apellidos"}
	phoneTerms   = []string{"teléfono", "telefono", "movil", "phone", "tfn", "tfno", "celular", "móvil"}
	paymentTerms = []string{"cuota", "pagad", "pago", "estado", "status", "situacion", "corriente"}
	imageTerms   = []string{"imagen", "foto", "photo", "img"}

	historyListColumn  = regexp.MustCompile(`historial|anteriores|ganados|history|premios`)
	historyMatchColumn = regexp.MustCompile(`ganador|winner|premiado|partido|match|jornada|encuentro|vs`)
	identityColumn     = regexp.MustCompile(`nombre|name|apellidos|id|socio|tel|phone|cuota|pago|pagad`)
)

// Values the sheet uses to mean "yes" in the payment and matchday columns.
var positiveValues = []string{
	"SI", "SÍ", "S",
	"YES", "Y",
	"TRUE", "T", "1",
	"PAGADO", "PAGADA",
	"OK", "ACTIVO", "ACTIVA",
	"AL CORRIENTE", "COMPLETADO",
}

func parseRoster(rows [][]string) []models.Member {
	if len(rows) < 2 {
		return []models.Member{}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.Trim(strings.TrimSpace(h), `"`)
	}

	members := make([]models.Member, 0, len(rows)-1)
	for idx, row := range rows[1:] {
		cells := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				cells[h] = strings.TrimSpace(row[i])
			} else {
				cells[h] = ""
			}
		}

		member := models.Member{
			ID:       valueFor(cells, headers, idTerms),
			Name:     valueFor(cells, headers, nameTerms),
			Phone:    valueFor(cells, headers, phoneTerms),
			Paid:     isPositive(valueFor(cells, headers, paymentTerms)),
			ImageURL: valueFor(cells, headers, imageTerms),
			History:  scanHistory(cells, headers),
		}
		if member.ID == "" {
			member.ID = "0"
		}
		if member.Name == "" {
			member.Name = "Desconocido"
		}
		if member.ImageURL == "" {
			// Fall back to the fixed slot backgrounds, cycling by row.
			member.ImageURL = models.PassSlots[idx%len(models.PassSlots)].ImageURL
		}
		members = append(members, member)
	}
	return members
}

// valueFor returns the first non-empty cell whose header contains one of the
// search terms.
func valueFor(cells map[string]string, headers []string, terms []string) string {
	for _, term := range terms {
		for _, h := range headers {
			if strings.Contains(strings.ToLower(h), term) {
				if v := cells[h]; v != "" {
					return v
				}
			}
		}
	}
	return ""
}

func isPositive(raw string) bool {
	clean := strings.ToUpper(strings.TrimSpace(strings.Trim(raw, `"'`)))
	if clean == "" {
		return false
	}
	for _, v := range positiveValues {
		if clean == v || strings.HasPrefix(clean, v) {
			return true
		}
	}
	return false
}

func isPositiveExact(upper string) bool {
	for _, v := range positiveValues {
		if upper == v {
			return true
		}
	}
	return false
}

// scanHistory collects prior-win evidence from the whole row, not just one
// column. Explicit history columns hold comma/semicolon lists; per-matchday
// columns count as a win when they hold a positive value (the column name is
// recorded) or any descriptive text (the text is recorded).
func scanHistory(cells map[string]string, headers []string) []string {
	seen := make(map[string]struct{})
	var history []string
	add := func(entry string) {
		entry = strings.TrimSpace(entry)
		if entry == "" || strings.EqualFold(entry, "NO") {
			return
		}
		if _, ok := seen[entry]; ok {
			return
		}
		seen[entry] = struct{}{}
		history = append(history, entry)
	}

	for _, h := range headers {
		lower := strings.ToLower(h)
		value := strings.Trim(cells[h], `"'`)
		if value == "" {
			continue
		}

		switch {
		case historyListColumn.MatchString(lower):
			for _, item := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ';' }) {
				add(item)
			}
		case historyMatchColumn.MatchString(lower) && !identityColumn.MatchString(lower):
			upper := strings.ToUpper(strings.TrimSpace(value))
			if upper == "NO" {
				continue
			}
			if isPositiveExact(upper) {
				// A bare "SI"/"OK" only says the member won; record the
				// column name ("Jornada 5") as the win tag.
				add(h)
			} else if len(value) > 2 {
				add(value)
			}
		}
	}
	return history
}
