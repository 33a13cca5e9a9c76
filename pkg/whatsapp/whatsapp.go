// Package whatsapp builds WhatsApp deep links for sharing digital passes.
package whatsapp

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	nonDigits    = regexp.MustCompile(`\D`)
	leadingZeros = regexp.MustCompile(`^0+`)
	mobilePrefix = regexp.MustCompile(`^[6789]`)
)

// NormalizePhone prepares a raw spreadsheet phone number for the WhatsApp
// API: every non-digit is stripped, leading zeros removed (the API rejects
// 00-prefixed numbers), and a bare 9-digit national number starting with
// 6/7/8/9 gets the country calling code prepended.
func NormalizePhone(phone, countryCode string) string {
	clean := nonDigits.ReplaceAllString(phone, "")
	clean = leadingZeros.ReplaceAllString(clean, "")

	if len(clean) == 9 && mobilePrefix.MatchString(clean) {
		clean = countryCode + clean
	}
	return clean
}

// Link returns an api.whatsapp.com send link. api.whatsapp.com is used over
// wa.me because wa.me mangles emoji encoding on desktop.
func Link(phone, countryCode, message string) string {
	return fmt.Sprintf("https://api.whatsapp.com/send?phone=%s&text=%s",
		NormalizePhone(phone, countryCode), url.QueryEscape(message))
}

// ShareMessage renders the pass-sharing message sent to a member.
func ShareMessage(memberName, passLink string) string {
	return fmt.Sprintf(`👋 Hola *%s*,

🔵⚪ *TU ABONO DIGITAL - DÉPOR*

Aquí tienes tu enlace de acceso único para entrar en Riazor:
👇👇👇
%s

🚨 *INSTRUCCIONES IMPORTANTES:*
1️⃣ 🔆 Sube el *BRILLO* de tu móvil al máximo.
2️⃣ 📲 Muestra el *CÓDIGO DE BARRAS* en el torno.
3️⃣ ❌ *NO* uses captura de pantalla (el pase caduca).

¡Nos vemos en Riazor! ¡Forza Dépor!`, strings.ToUpper(FirstName(memberName)), passLink)
}

// FirstName extracts the given name from a roster full name. The sheet lists
// members surname-first (APELLIDO1 APELLIDO2 NOMBRE), occasionally in
// "Apellidos, Nombre" form.
func FirstName(fullName string) string {
	clean := strings.TrimSpace(fullName)
	if clean == "" {
		return "Socio"
	}

	if i := strings.Index(clean, ","); i >= 0 {
		return titleCase(clean[i+1:])
	}

	words := strings.Fields(clean)
	switch {
	case len(words) >= 3:
		return titleCase(strings.Join(words[2:], " "))
	case len(words) == 2:
		return titleCase(words[1])
	default:
		return titleCase(words[0])
	}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
