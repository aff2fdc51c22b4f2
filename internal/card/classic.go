package card

import "fmt"

var classicTemplates = []Classic{
	{ID: "classic-001", Name: "Ocean Breeze", BackgroundStyle: BackgroundGradient, BackgroundColors: []string{"#f0f9ff", "#e0f2fe"}, TextColor: "#0f172a", AccentColor: "#0ea5e9", BorderStyle: "rounded", FontWeight: "normal"},
	{ID: "classic-002", Name: "Midnight", BackgroundStyle: BackgroundGradient, BackgroundColors: []string{"#1e1b4b", "#312e81"}, TextColor: "#e0e7ff", AccentColor: "#818cf8", BorderStyle: "rounded", FontWeight: "bold"},
	{ID: "classic-003", Name: "Paper White", BackgroundStyle: BackgroundSolid, BackgroundColors: []string{"#ffffff"}, TextColor: "#111827", AccentColor: "#6b7280", BorderStyle: "none", FontWeight: "light"},
	{ID: "classic-004", Name: "Orchid", BackgroundStyle: BackgroundGradient, BackgroundColors: []string{"#fdf4ff", "#fae8ff"}, TextColor: "#701a75", AccentColor: "#c026d3", BorderStyle: "dashed", FontWeight: "normal"},
	{ID: "classic-005", Name: "Meadow", BackgroundStyle: BackgroundGradient, BackgroundColors: []string{"#f7fee7", "#ecfccb"}, TextColor: "#365314", AccentColor: "#84cc16", BorderStyle: "rounded", FontWeight: "normal"},
	{ID: "classic-006", Name: "Ember", BackgroundStyle: BackgroundSolid, BackgroundColors: []string{"#fff7ed"}, TextColor: "#7c2d12", AccentColor: "#f97316", BorderStyle: "none", FontWeight: "bold"},
	{ID: "classic-007", Name: "Crimson", BackgroundStyle: BackgroundGradient, BackgroundColors: []string{"#fef2f2", "#fee2e2"}, TextColor: "#7f1d1d", AccentColor: "#ef4444", BorderStyle: "rounded", FontWeight: "normal"},
	{ID: "classic-008", Name: "Graphite", BackgroundStyle: BackgroundSolid, BackgroundColors: []string{"#1f2937"}, TextColor: "#f9fafb", AccentColor: "#fbbf24", BorderStyle: "none", FontWeight: "bold"},
}

// ClassicTemplates returns the built-in catalog. The slice is a fresh copy.
func ClassicTemplates() []Classic {
	out := make([]Classic, len(classicTemplates))
	for i, c := range classicTemplates {
		c.BackgroundColors = append([]string(nil), c.BackgroundColors...)
		out[i] = c
	}
	return out
}

// ClassicByID looks up a built-in design.
func ClassicByID(id string) (Classic, bool) {
	for _, c := range ClassicTemplates() {
		if c.ID == id {
			return c, true
		}
	}
	return Classic{}, false
}

type colorScheme struct {
	bg     []string
	text   string
	accent string
}

var sampleSchemes = []colorScheme{
	{bg: []string{"#f0f9ff", "#e0f2fe"}, text: "#0f172a", accent: "#0ea5e9"},
	{bg: []string{"#fdf4ff", "#fae8ff"}, text: "#701a75", accent: "#c026d3"},
	{bg: []string{"#f7fee7", "#ecfccb"}, text: "#365314", accent: "#84cc16"},
	{bg: []string{"#fff7ed", "#ffedd5"}, text: "#7c2d12", accent: "#f97316"},
	{bg: []string{"#fef2f2", "#fee2e2"}, text: "#7f1d1d", accent: "#ef4444"},
	{bg: []string{"#1e1b4b", "#312e81"}, text: "#e0e7ff", accent: "#818cf8"},
}

var (
	sampleBackgrounds = []string{BackgroundGradient, BackgroundSolid}
	sampleLayouts     = []string{"centered", "left-aligned", "split", "minimal", "bold", "modern"}
	sampleDecorations = []string{"circles", "lines", "dots", "waves", "geometric", "none"}
	sampleWeights     = []string{"light", "normal", "bold", "black"}
	sampleBorders     = []string{"none", "rounded", "sharp", "fancy", "shadow"}
)

// SampleDesigns produces count deterministic designs by cycling fixed style
// options. It stands in for the AI generator when none is configured.
func SampleDesigns(count int) []Classic {
	out := make([]Classic, 0, count)
	for i := 0; i < count; i++ {
		scheme := sampleSchemes[i%len(sampleSchemes)]
		out = append(out, Classic{
			ID:               fmt.Sprintf("design-%d", i),
			Name:             fmt.Sprintf("Design %d", i+1),
			BackgroundStyle:  sampleBackgrounds[i%len(sampleBackgrounds)],
			BackgroundColors: append([]string(nil), scheme.bg...),
			TextColor:        scheme.text,
			AccentColor:      scheme.accent,
			Layout:           sampleLayouts[i%len(sampleLayouts)],
			Decoration:       sampleDecorations[i%len(sampleDecorations)],
			FontWeight:       sampleWeights[i%len(sampleWeights)],
			BorderStyle:      sampleBorders[i%len(sampleBorders)],
		})
	}
	return out
}
