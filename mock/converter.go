package mock

import "certquiz"

var _ certquiz.Converter = (*Converter)(nil)

// Converter is a mock implementation of certquiz.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
