package models

// Document is one uploaded resume. Data is discarded once the text has been
// extracted.
type Document struct {
	Name string
	Data []byte
}
