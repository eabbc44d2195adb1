package diffinsight

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for every visual element of the analyzer screen.
type Styles struct {
	Addition ColorPair // Preview lines starting with '+'
	Deletion ColorPair // Preview lines starting with '-'
	Neutral  ColorPair // All other preview lines

	Title    ColorPair // Application header
	Subtitle ColorPair // Tagline and panel descriptions
	Border   ColorPair // Panel borders
	Focus    ColorPair // Border of the focused panel

	Issue    ColorPair // Issue items and the issues panel title
	Solution ColorPair // Solution items and the solutions panel title
	Muted    ColorPair // Placeholders and help text
	Button   ColorPair // Enabled analyze action
	Disabled ColorPair // Disabled analyze action

	ToastInfo    ColorPair
	ToastSuccess ColorPair
	ToastError   ColorPair
}

// Color is a hex color string in "#RRGGBB" format.
type Color string

// Palette holds the semantic colors a theme is built from. Syntax colors feed
// the tokenizer used for preview highlighting.
type Palette struct {
	Background Color
	Foreground Color

	Added    Color
	Deleted  Color
	Context  Color
	Warning  Color
	Success  Color
	Error    Color
	Accent   Color
	Surface  Color
	Subtle   Color

	Keyword     Color
	String      Color
	Number      Color
	Comment     Color
	Operator    Color
	Function    Color
	Type        Color
	Constant    Color
	Punctuation Color
}

// Theme provides styles for rendering the analyzer.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
