package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultLocale is used when no locale is configured
const DefaultLocale = "en"

// Messages holds the user-facing text of an interactive session.
// Format fields take a single verb: %d for the result, %q for the offending input.
type Messages struct {
	OperationPrompt        string
	FirstPrompt            string
	SecondPrompt           string
	ResultFormat           string
	InvalidOperationFormat string
	InvalidInputFormat     string
	DivisionByZero         string
	NotConfigured          string
}

var catalog = map[string]Messages{
	"en": {
		OperationPrompt:        "Choose operation (sum, sub, mult, div): ",
		FirstPrompt:            "Enter first number: ",
		SecondPrompt:           "Enter second number: ",
		ResultFormat:           "Result: %d",
		InvalidOperationFormat: "Invalid operation: %q",
		InvalidInputFormat:     "Invalid number: %q",
		DivisionByZero:         "Error: division by zero",
		NotConfigured:          "Error: calculator not configured",
	},
	"pt": {
		OperationPrompt:        "Escolha a operação: (sum, sub, mult, div): ",
		FirstPrompt:            "Digite o primeiro número: ",
		SecondPrompt:           "Digite o segundo número: ",
		ResultFormat:           "Resultado: %d",
		InvalidOperationFormat: "Operação inválida: %q",
		InvalidInputFormat:     "Número inválido: %q",
		DivisionByZero:         "Erro: divisão por zero",
		NotConfigured:          "Erro: calculadora não configurada",
	},
}

// MessagesFor returns the messages for locale. An empty locale selects DefaultLocale.
func MessagesFor(locale string) (Messages, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		locale = DefaultLocale
	}
	m, ok := catalog[locale]
	if !ok {
		return Messages{}, fmt.Errorf("unsupported locale %q (supported: %s)", locale, strings.Join(Locales(), ", "))
	}
	return m, nil
}

// Locales returns the supported locale codes, sorted
func Locales() []string {
	locales := make([]string, 0, len(catalog))
	for l := range catalog {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}
