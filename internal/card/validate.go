package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrMalformedDesigns = errors.New("malformed design data")

// defaults for AI generated designs with missing fields
const (
	defaultGeneratedBackground = BackgroundGradient
	defaultGeneratedLayout     = "centered"
	defaultGeneratedDecoration = "none"
	defaultGeneratedBorder     = "none"
	defaultGeneratedWeight     = "normal"
)

var defaultGeneratedColors = []string{"#ffffff", ManagedFallbackColor}

var jsonArrayRe = regexp.MustCompile(`\[[\s\S]*\]`)

// ParseSettings reads a managed template's free-form config map into typed
// settings. Unknown keys are ignored; wrong types fall back to defaults.
func ParseSettings(m map[string]any) Settings {
	s := Settings{
		FontColor:   stringValue(m, "fontColor"),
		FontSize:    intValue(m, "fontSize"),
		AccentColor: stringValue(m, "accentColor"),
		FontFamily:  stringValue(m, "fontFamily"),
		Premium:     boolValue(m, "premium"),
		Price:       stringValue(m, "price"),
		QRColor:     stringValue(m, "qrColor"),
		QRLogoURL:   stringValue(m, "qrLogoUrl"),
	}
	if s.FontSize <= 0 {
		s.FontSize = 0
	}
	return s
}

// Map converts settings back to the stored config map, dropping empty values.
func (s Settings) Map() map[string]any {
	m := map[string]any{"premium": s.Premium}
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put("fontColor", s.FontColor)
	put("accentColor", s.AccentColor)
	put("fontFamily", s.FontFamily)
	put("price", s.Price)
	put("qrColor", s.QRColor)
	put("qrLogoUrl", s.QRLogoURL)
	if s.FontSize > 0 {
		m["fontSize"] = s.FontSize
	}
	return m
}

// ParseGenerated extracts the design array from a model's text answer. The
// answer must contain a JSON array; anything else is ErrMalformedDesigns.
func ParseGenerated(text string) ([]Classic, error) {
	match := jsonArrayRe.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("%w: no json array in response", ErrMalformedDesigns)
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(match), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDesigns, err)
	}

	designs := make([]Classic, 0, len(items))
	for i, raw := range items {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: item %d is not an object", ErrMalformedDesigns, i)
		}
		designs = append(designs, NormalizeGenerated(m, i))
	}
	return designs, nil
}

// NormalizeGenerated turns one raw AI design into a canonical classic-shaped
// record, filling absent fields with defaults.
func NormalizeGenerated(m map[string]any, index int) Classic {
	c := Classic{
		ID:          stringValue(m, "id"),
		Name:        stringValue(m, "name"),
		TextColor:   orDefault(stringValue(m, "textColor"), DefaultDesignFontColor),
		AccentColor: orDefault(stringValue(m, "accentColor"), DefaultDesignAccentColor),
		Layout:      orDefault(stringValue(m, "layout"), defaultGeneratedLayout),
		Decoration:  orDefault(stringValue(m, "decoration"), defaultGeneratedDecoration),
		BorderStyle: orDefault(stringValue(m, "borderStyle"), defaultGeneratedBorder),
		FontWeight:  orDefault(stringValue(m, "fontWeight"), defaultGeneratedWeight),
	}
	if c.ID == "" {
		c.ID = fmt.Sprintf("design-%d", index)
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("Design %d", index+1)
	}

	bg := strings.ToLower(stringValue(m, "bgStyle"))
	switch {
	case bg == "":
		c.BackgroundStyle = defaultGeneratedBackground
	case strings.Contains(bg, BackgroundGradient):
		c.BackgroundStyle = BackgroundGradient
	default:
		c.BackgroundStyle = BackgroundSolid
	}

	if raw, ok := m["bgColors"].([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok && s != "" && len(c.BackgroundColors) < 2 {
				c.BackgroundColors = append(c.BackgroundColors, s)
			}
		}
	}
	if len(c.BackgroundColors) == 0 {
		c.BackgroundColors = append([]string(nil), defaultGeneratedColors...)
	}
	return c
}

func stringValue(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func boolValue(m map[string]any, key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

func intValue(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(math.Round(v))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
