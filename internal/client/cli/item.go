package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mkraev/lockbox/internal/client/api"
	"github.com/mkraev/lockbox/internal/filex"
)

// AddNote prompts for a name and a multiline body and stores a text item.
func (a *App) AddNote(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter note name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	content, err := GetMultiline(a.reader, "Enter note text", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	id, err := a.client.Create(ctx, api.CreateItemRequest{Type: "text", Content: content, Name: name})
	if err != nil {
		log.Printf("Add note unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Stored note %s", id)
	return nil
}

// AddFile reads a local file, wraps it in a data URL and stores a file item.
func (a *App) AddFile(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	name, err := GetSimpleText(a.reader, "Enter item name (empty for the file name)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if name == "" {
		name = filepath.Base(path)
	}

	dataURL, size, err := filex.ReadAsDataURL(path)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	id, err := a.client.Create(ctx, api.CreateItemRequest{
		Type:    "file",
		Content: dataURL,
		Name:    name,
		Size:    filex.HumanSize(size),
	})
	if err != nil {
		log.Printf("Add file unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Stored file %s", id)
	return nil
}

// List prints the vault's item metadata, newest first.
func (a *App) List(ctx context.Context) error {
	items, err := a.client.List(ctx)
	if err != nil {
		log.Printf("List unsuccessful: %s", err.Error())
		return err
	}

	if len(items) == 0 {
		printlnFn("The vault is empty")
		return nil
	}

	for _, item := range items {
		printlnFn(fmt.Sprintf("%s  %-4s  %-8s  %-20s  %s", item.ID, item.Type, item.Size, item.Name, item.DateAdded))
	}
	return nil
}

// Show fetches one item. Notes are printed; files are written next to the
// CWD under their item name.
func (a *App) Show(ctx context.Context, id string) error {
	item, err := a.client.Fetch(ctx, id)
	if err != nil {
		log.Printf("Fetch unsuccessful: %s", err.Error())
		return err
	}

	if item.Type == "file" {
		n, err := filex.WriteFromDataURL(item.Name, item.Content)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
		log.Printf("Saved %s (%s)", item.Name, filex.HumanSize(int64(n)))
		return nil
	}

	printlnFn("---", item.Name, "---")
	printlnFn(item.Content)
	return nil
}

// Delete removes one item.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.client.Delete(ctx, id); err != nil {
		log.Printf("Delete unsuccessful: %s", err.Error())
		return err
	}
	log.Printf("Deleted %s", id)
	return nil
}
