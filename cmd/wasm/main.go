//go:build js && wasm

package main

import (
	"context"
	"syscall/js"

	"github.com/inamate/drafter/internal/document"
	"github.com/inamate/drafter/internal/engine"
	"github.com/inamate/drafter/internal/event"
)

var eng *engine.Engine

func main() {
	// Drawings saved in the playground live as long as the page.
	eng = engine.NewEngine(engine.WithStore(&document.MemStore{}))

	// Create the engine API object
	drafterEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	drafterEngine.Set("loadDocument", js.FuncOf(loadDocument))
	drafterEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	drafterEngine.Set("runCommand", js.FuncOf(runCommand))
	drafterEngine.Set("pointerMove", js.FuncOf(pointerMove))
	drafterEngine.Set("pointerClick", js.FuncOf(pointerClick))
	drafterEngine.Set("keyDown", js.FuncOf(keyDown))
	drafterEngine.Set("pan", js.FuncOf(pan))
	drafterEngine.Set("zoom", js.FuncOf(zoom))
	drafterEngine.Set("zoomExtents", js.FuncOf(zoomExtents))
	drafterEngine.Set("resize", js.FuncOf(resize))
	drafterEngine.Set("setSelection", js.FuncOf(setSelection))
	drafterEngine.Set("applySettings", js.FuncOf(applySettings))

	// --- Queries (frontend ← backend) ---
	drafterEngine.Set("render", js.FuncOf(render))
	drafterEngine.Set("hitTest", js.FuncOf(hitTest))
	drafterEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	drafterEngine.Set("getSelection", js.FuncOf(getSelection))
	drafterEngine.Set("getDocument", js.FuncOf(getDocument))
	drafterEngine.Set("getCommands", js.FuncOf(getCommands))
	drafterEngine.Set("getPrompt", js.FuncOf(getPrompt))

	// Register on global scope
	js.Global().Set("drafterEngine", drafterEngine)

	// Signal that WASM is ready
	js.Global().Set("drafterWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorResult(err error) any {
	return js.ValueOf(map[string]any{"error": err.Error()})
}

func okResult() any {
	return js.ValueOf(map[string]any{"ok": true})
}

// modifiers reads the shiftKey/ctrlKey/altKey flags of a DOM event object.
func modifiers(v js.Value) event.KeyModifiers {
	var m event.KeyModifiers
	if v.Type() != js.TypeObject {
		return m
	}
	if v.Get("shiftKey").Truthy() {
		m |= event.ModShift
	}
	if v.Get("ctrlKey").Truthy() {
		m |= event.ModCtrl
	}
	if v.Get("altKey").Truthy() {
		m |= event.ModAlt
	}
	return m
}

func optionalMods(args []js.Value, i int) event.KeyModifiers {
	if len(args) <= i {
		return event.ModNone
	}
	return modifiers(args[i])
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing document JSON"})
	}
	if err := eng.LoadDocument([]byte(args[0].String())); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func loadSampleDocument(this js.Value, args []js.Value) any {
	eng.LoadSample()
	return okResult()
}

// runCommand(name, ...args) returns once the command finishes or first waits
// for input.
func runCommand(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing command name"})
	}
	cmdArgs := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		cmdArgs = append(cmdArgs, a.String())
	}
	if err := eng.RunCommand(context.Background(), args[0].String(), cmdArgs...); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func pointerMove(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return nil
	}
	eng.PointerMove(args[0].Float(), args[1].Float(), optionalMods(args, 2))
	return nil
}

func pointerClick(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return nil
	}
	eng.PointerClick(args[0].Float(), args[1].Float(), args[2].Int(), optionalMods(args, 3))
	return nil
}

func keyDown(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return nil
	}
	eng.KeyDown(args[0].String(), optionalMods(args, 1))
	return nil
}

func pan(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return nil
	}
	eng.Pan(args[0].Float(), args[1].Float())
	return nil
}

func zoom(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return nil
	}
	eng.Zoom(args[0].Float(), args[1].Float(), args[2].Float())
	return nil
}

func zoomExtents(this js.Value, args []js.Value) any {
	eng.ZoomExtents()
	return nil
}

func resize(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return nil
	}
	eng.Resize(args[0].Float(), args[1].Float())
	return nil
}

func setSelection(this js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

func applySettings(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing settings JSON"})
	}
	if err := eng.ApplySettings([]byte(args[0].String())); err != nil {
		return errorResult(err)
	}
	return okResult()
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getSelectionBounds(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getSelection(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetSelection())
}

func getDocument(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetDocument())
}

func getCommands(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetCommands())
}

func getPrompt(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.Prompt())
}
