// Package ui provides the control surface, HUD, and descriptor-driven
// panels drawn around the schematic.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetLevelBar                      // current/max bar with color thresholds
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string             // Unique identifier for the field
	Label       string             // Display label
	Widget      WidgetType         // How to render
	Format      string             // Printf format for text (e.g., "%.2f")
	Max         float32            // Denominator for level bars
	Visible     func(any) bool     // Optional visibility check (nil = always visible)
	Getter      func(any) float32  // Value extractor (for numeric fields)
	TextGetter  func(any) string   // Value extractor (for text fields)
	ColorGetter func(any) rl.Color // Color extractor (for color swatches)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string              // Unique identifier
	Title    string              // Panel title (optional)
	Sections []SectionDescriptor // Sections in order
	Width    int32               // Panel width (0 = auto)
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	TitleColor     rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	MinusButton    rl.Color
	PlusButton     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 250, G: 250, B: 250, A: 245},
		PanelBorder:    rl.Color{R: 190, G: 190, B: 190, A: 255},
		SectionHeader:  rl.Color{R: 40, G: 90, B: 160, A: 255},
		TitleColor:     rl.Black,
		LabelColor:     rl.DarkGray,
		ValueColor:     rl.Black,
		BarBg:          rl.Color{R: 220, G: 220, B: 220, A: 255},
		BarFill:        rl.Color{R: 0, G: 180, B: 255, A: 255},
		BarFillLow:     rl.Color{R: 120, G: 200, B: 120, A: 255},
		BarFillMedium:  rl.Color{R: 220, G: 190, B: 90, A: 255},
		BarFillHigh:    rl.Color{R: 220, G: 90, B: 90, A: 255},
		MinusButton:    rl.Color{R: 255, G: 153, B: 153, A: 255},
		PlusButton:     rl.Color{R: 153, G: 255, B: 153, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}
