package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/editor"
)

var ErrNoStore = errors.New("no drawing store configured")

const drawingFilter = "Drawings|*.json"

func drawingName(ctx context.Context, ed *editor.Editor, args []string, save bool) (string, bool) {
	if len(args) > 0 && args[0] != "" {
		return args[0], true
	}
	opts := editor.NewFilenameOptions("Drawing name", save)
	opts.Filter = drawingFilter
	res := ed.GetFilename(ctx, opts)
	return res.Value, res.IsAccepted() && res.Value != ""
}

func saveDocument(ctx context.Context, ed *editor.Editor, args []string) error {
	store := ed.Store()
	if store == nil {
		return ErrNoStore
	}
	name, ok := drawingName(ctx, ed, args, true)
	if !ok {
		return nil
	}
	doc := ed.Document()
	snap, err := document.Encode(doc)
	if err != nil {
		return err
	}
	snap.Name = name
	if err := store.Save(ctx, name, snap); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	doc.Name = name
	ed.Logger().Info("drawing saved", "name", name, "objects", len(snap.Objects))
	return nil
}

// openDocument replaces the model and settings of the current document with
// a stored drawing.
func openDocument(ctx context.Context, ed *editor.Editor, args []string) error {
	store := ed.Store()
	if store == nil {
		return ErrNoStore
	}
	name, ok := drawingName(ctx, ed, args, false)
	if !ok {
		return nil
	}
	snap, err := store.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	loaded, err := document.Decode(snap)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}

	doc := ed.Document()
	doc.Model.Clear()
	doc.Model.Add(loaded.Model.Items()...)
	settings, err := loaded.Settings.MarshalJSON()
	if err != nil {
		return err
	}
	if err := doc.Settings.ApplyJSON(settings); err != nil {
		return err
	}
	doc.Name = name
	ed.Logger().Info("drawing opened", "name", name, "objects", doc.Model.Len())
	return nil
}

var documentCommands = []editor.Descriptor{
	{Name: "Document.Save", DisplayName: "Save", New: func() editor.Command { return editor.CommandFunc(saveDocument) }},
	{Name: "Document.Open", DisplayName: "Open", New: func() editor.Command { return editor.CommandFunc(openDocument) }},
}
