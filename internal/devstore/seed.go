package devstore

import (
	"encoding/json"
	"fmt"
	"time"
)

type sample struct {
	title  string
	author string
	genre  string
	year   int
}

var samples = []sample{
	{"Dune", "Frank Herbert", "Science Fiction", 1965},
	{"Foundation", "Isaac Asimov", "Science Fiction", 1951},
	{"The Left Hand of Darkness", "Ursula K. Le Guin", "Science Fiction", 1969},
	{"Pride and Prejudice", "Jane Austen", "Romance", 1813},
	{"Jane Eyre", "Charlotte Brontë", "Romance", 1847},
	{"The Hound of the Baskervilles", "Arthur Conan Doyle", "Mystery", 1902},
	{"Murder on the Orient Express", "Agatha Christie", "Mystery", 1934},
	{"The Name of the Rose", "Umberto Eco", "Mystery", 1980},
	{"Middlemarch", "George Eliot", "Fiction", 1871},
	{"Beloved", "Toni Morrison", "Fiction", 1987},
	{"One Hundred Years of Solitude", "Gabriel García Márquez", "Fiction", 1967},
	{"Silent Spring", "Rachel Carson", "Non-Fiction", 1962},
	{"The Structure of Scientific Revolutions", "Thomas S. Kuhn", "Non-Fiction", 1962},
	{"A Brief History of Time", "Stephen Hawking", "Non-Fiction", 1988},
	{"The Diary of a Young Girl", "Anne Frank", "Biography", 1947},
	{"Long Walk to Freedom", "Nelson Mandela", "Biography", 1994},
}

// Seed inserts n sample books into the collection, cycling through the
// built-in list. Creation times step back one minute per record from now.
func Seed(store *Store, namespace, collection string, n int, now time.Time) error {
	for i := 0; i < n; i++ {
		s := samples[i%len(samples)]
		title := s.title
		if i >= len(samples) {
			title = fmt.Sprintf("%s (copy %d)", s.title, i/len(samples)+1)
		}
		status := "Available"
		if i%3 == 2 {
			status = "Issued"
		}
		doc, err := documentOf(map[string]any{
			"title":         title,
			"author":        s.author,
			"genre":         s.genre,
			"publishedYear": s.year,
			"status":        status,
			"imageUrl":      "",
			"createdAt":     now.Add(-time.Duration(i) * time.Minute).UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
		if err != nil {
			return err
		}
		if _, err := store.Insert(namespace, collection, doc); err != nil {
			return fmt.Errorf("seed %q: %w", title, err)
		}
	}
	return nil
}

func documentOf(fields map[string]any) (Document, error) {
	doc := make(Document, len(fields))
	for k, v := range fields {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		doc[k] = encoded
	}
	return doc, nil
}
