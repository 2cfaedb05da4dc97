package certquiz

// Converter transforms HTML content into Markdown. Used by the export
// command to render stored questions as a study sheet.
type Converter interface {
	Convert(html string) (string, error)
}
