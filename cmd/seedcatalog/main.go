package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"libranet/library"
)

// Seeds the starter catalog into an empty snapshot: 100 book volumes,
// 3 audiobooks with mp3 preview clips, and 5 magazines.
func main() {
	dataPath := flag.String("data", "libranet.json", "path to the snapshot file")
	previewDir := flag.String("previews", "previews", "directory holding audiobook preview mp3 files")
	flag.Parse()

	store, err := library.NewFileStore(*dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	manager, err := library.NewManager(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening library: %v\n", err)
		os.Exit(1)
	}

	if len(manager.FindItems("", "")) > 0 {
		fmt.Println("Catalog already seeded, nothing to do.")
		return
	}

	baseBooks := [][2]string{
		{"Pride and Prejudice", "Jane Austen"},
		{"Moby-Dick", "Herman Melville"},
		{"War and Peace", "Leo Tolstoy"},
		{"The Great Gatsby", "F. Scott Fitzgerald"},
		{"Crime and Punishment", "Fyodor Dostoevsky"},
		{"The Hobbit", "J.R.R. Tolkien"},
		{"Meditations", "Marcus Aurelius"},
		{"Man's Search for Meaning", "Viktor Frankl"},
		{"Clean Code", "Robert C. Martin"},
		{"Introduction to Algorithms", "Cormen"},
	}

	successCount := 0
	errorCount := 0

	for vol := 1; vol <= 10; vol++ {
		for _, b := range baseBooks {
			title := fmt.Sprintf("%s Vol.%d", b[0], vol)
			if _, err := manager.AddItem(title, b[1], library.CategoryBook, nil); err != nil {
				fmt.Fprintf(os.Stderr, "Error adding %q: %v\n", title, err)
				errorCount++
				continue
			}
			successCount++
		}
	}

	audiobooks := [][3]string{
		{"Becoming (Audiobook)", "Michelle Obama", "becoming.mp3"},
		{"The Alchemist (Audiobook)", "Paulo Coelho", "alchemist.mp3"},
		{"Sapiens (Audiobook)", "Yuval Noah Harari", "sapiens.mp3"},
	}
	for _, a := range audiobooks {
		clip := loadPreview(*previewDir, a[2])
		if _, err := manager.AddItem(a[0], a[1], library.CategoryAudiobook, clip); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding %q: %v\n", a[0], err)
			errorCount++
			continue
		}
		successCount++
	}

	magazines := []string{"National Geographic", "Forbes", "Time", "The Hindu", "The New York Times"}
	for _, m := range magazines {
		if _, err := manager.AddItem(m, "Various", library.CategoryMagazine, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding %q: %v\n", m, err)
			errorCount++
			continue
		}
		successCount++
	}

	fmt.Printf("Seed complete: %d items added, %d errors\n", successCount, errorCount)
}

// loadPreview reads the mp3 clip from disk, falling back to the placeholder
// payload when the file is missing.
func loadPreview(dir, name string) []byte {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return library.DummyMP3Bytes()
	}
	return raw
}
