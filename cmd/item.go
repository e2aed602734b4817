package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"libranet/library"
)

var addItemCmd = &cobra.Command{
	Use:   "add-item",
	Short: "Add a book, audiobook or magazine to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		category, _ := cmd.Flags().GetString("category")
		previewPath, _ := cmd.Flags().GetString("preview")

		var preview []byte
		if previewPath != "" {
			raw, err := os.ReadFile(filepath.Clean(previewPath))
			if err != nil {
				return fmt.Errorf("read preview: %w", err)
			}
			preview = raw
		}

		it, err := mgr.AddItem(title, author, library.Category(category), preview)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s %q with item ID %d\n", it.Category, it.Title, it.ID)
		return nil
	},
}

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Search the catalog by category and title/author text",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		query, _ := cmd.Flags().GetString("query")

		items := mgr.FindItems(library.Category(category), query)
		if len(items) == 0 {
			fmt.Println("Nothing found")
			return nil
		}
		fmt.Printf("%-5s %-40s %-25s %-10s %s\n", "ID", "Title", "Author", "Category", "Available")
		for _, it := range items {
			avail := "Yes"
			if !it.Available {
				avail = "No"
			}
			fmt.Printf("%-5d %-40s %-25s %-10s %s\n", it.ID, it.Title, it.Author, it.Category, avail)
		}
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Write an audiobook's preview clip to an mp3 file",
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, _ := cmd.Flags().GetInt64("item")
		out, _ := cmd.Flags().GetString("out")

		clip, err := mgr.GetPreview(itemID)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, clip, 0o644); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(clip), out)
		return nil
	},
}

func init() {
	addItemCmd.Flags().String("title", "", "item title")
	addItemCmd.Flags().String("author", "", "author or publisher")
	addItemCmd.Flags().String("category", string(library.CategoryBook), "Book, Audiobook or Magazine")
	addItemCmd.Flags().String("preview", "", "path to an mp3 preview clip (audiobooks only)")
	addItemCmd.MarkFlagRequired("title")

	findCmd.Flags().String("category", "", "filter by category")
	findCmd.Flags().String("query", "", "substring of title or author")

	previewCmd.Flags().Int64("item", 0, "item ID")
	previewCmd.Flags().String("out", "preview.mp3", "output file")
	previewCmd.MarkFlagRequired("item")

	rootCmd.AddCommand(addItemCmd, findCmd, previewCmd)
}
