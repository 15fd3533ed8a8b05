package f1udp

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NameCodes maps a folded driver name (upper case, no accents, letters and
// single spaces only) to a three letter code.
type NameCodes map[string]string

var DefaultNameCodes = NameCodes{
	"MAX VERSTAPPEN":        "VER",
	"VERSTAPPEN":            "VER",
	"SERGIO PEREZ":          "PER",
	"PEREZ":                 "PER",
	"PE":                    "PER",
	"LEWIS HAMILTON":        "HAM",
	"HAMILTON":              "HAM",
	"GEORGE RUSSELL":        "RUS",
	"RUSSELL":               "RUS",
	"CHARLES LECLERC":       "LEC",
	"LECLERC":               "LEC",
	"LE":                    "LEC",
	"CARLOS SAINZ":          "SAI",
	"CARLOS SAINZ JR":       "SAI",
	"SAINZ JR":              "SAI",
	"SAINZ":                 "SAI",
	"MSAINZ":                "SAI",
	"LANDO NORRIS":          "NOR",
	"NORRIS":                "NOR",
	"OSCAR PIASTRI":         "PIA",
	"PIASTRI":               "PIA",
	"FERNANDO ALONSO":       "ALO",
	"ALONSO":                "ALO",
	"LANCE STROLL":          "STR",
	"STROLL":                "STR",
	"PIERRE GASLY":          "GAS",
	"GASLY":                 "GAS",
	"ESTEBAN OCON":          "OCO",
	"OCON":                  "OCO",
	"ALEXANDER ALBON":       "ALB",
	"ALBON":                 "ALB",
	"PALBON":                "ALB",
	"LOGAN SARGEANT":        "SAR",
	"SARGEANT":              "SAR",
	"YUKI TSUNODA":          "TSU",
	"TSUNODA":               "TSU",
	"TS":                    "TSU",
	"DANIEL RICCIARDO":      "RIC",
	"RICCIARDO":             "RIC",
	"VALTTERI BOTTAS":       "BOT",
	"BOTTAS":                "BOT",
	"GUANYU ZHOU":           "ZHO",
	"ZHOU":                  "ZHO",
	"KEVIN MAGNUSSEN":       "MAG",
	"MAGNUSSEN":             "MAG",
	"NICO HULKENBERG":       "HUL",
	"HULKENBERG":            "HUL",
	"LIAM LAWSON":           "LAW",
	"LAWSON":                "LAW",
	"OLIVER BEARMAN":        "BEA",
	"BEARMAN":               "BEA",
	"FRANCO COLAPINTO":      "COL",
	"COLAPINTO":             "COL",
	"JACK DOOHAN":           "DOO",
	"DOOHAN":                "DOO",
	"ANDREA KIMI ANTONELLI": "ANT",
	"ANTONELLI":             "ANT",
	"GABRIEL BORTOLETO":     "BOR",
	"BORTOLETO":             "BOR",
	"ISACK HADJAR":          "HAD",
	"HADJAR":                "HAD",
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldName reduces a display name to a lookup key.
func foldName(name string) string {
	folded, _, err := transform.String(accentFolder, name)

	if err != nil {
		folded = name
	}

	folded = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return unicode.ToUpper(r)
		}

		return -1
	}, folded)

	return strings.Join(strings.Fields(folded), " ")
}

// With returns a copy of n extended by overrides. Override keys are folded the
// same way lookups are.
func (n NameCodes) With(overrides map[string]string) NameCodes {
	out := make(NameCodes, len(n)+len(overrides))

	for name, code := range n {
		out[name] = code
	}

	for name, code := range overrides {
		if key := foldName(name); key != "" {
			out[key] = strings.ToUpper(strings.TrimSpace(code))
		}
	}

	return out
}

// Code resolves a display name to a short code: exact match, then last word,
// then the first three letters of the last word. An empty name becomes
// "slot-N".
func (n NameCodes) Code(name string, slot int) string {
	key := foldName(name)

	if key == "" {
		return fmt.Sprintf("slot-%d", slot)
	}

	if code, ok := n[key]; ok {
		return code
	}

	words := strings.Fields(key)
	last := words[len(words)-1]

	if code, ok := n[last]; ok {
		return code
	}

	if utf8.RuneCountInString(last) > 3 {
		return string([]rune(last)[:3])
	}

	return last
}

// CleanName decodes a fixed width, NUL padded name field. Invalid UTF-8 is
// replaced and non-printable runes are dropped.
func CleanName(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}

	name := strings.ToValidUTF8(string(raw), string(utf8.RuneError))

	name = strings.Map(func(r rune) rune {
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			return -1
		}

		return r
	}, name)

	return strings.TrimSpace(name)
}
