package tutorialsite

// BuildIndex renders the index page listing tutorials in the given order.
// Entries are not validated; an empty list renders an empty index.
func BuildIndex(templates *Templates, tutorials []Tutorial) ([]byte, error) {
	if tutorials == nil {
		tutorials = []Tutorial{}
	}
	return templates.RenderIndex(IndexData{Tutorials: tutorials})
}
