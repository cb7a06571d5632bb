// Package keyloom edits a family of flat key-value documents that are
// meant to stay key-aligned, such as one JSON file per locale holding the
// same keys with locale-specific values.
//
// The documents are treated as one logical table keyed by a shared key
// space. A key added through the engine is checked against every loaded
// document, a deleted key disappears from all of them, and an edit sets
// each document's value independently.
//
// Features:
//
//   - **Two-phase search**: queries match keys first and fall back to values.
//   - **Stable display order**: non-numeric keys first, then numeric keys.
//   - **Formats**: JSON (default), YAML and TOML files, written atomically.
//   - **Versioning**: optional git commit per save.
//
// Usage:
//
//	engine, err := keyloom.New(keyloom.WithIndent(2))
//	_, err = keyloom.LoadAll(ctx, engine, "locales/*.json")
//
//	err = engine.AddKey("greeting", map[string]string{"en.json": "Hello", "de.json": "Hallo"})
//	view := engine.Search("greet")
//
//	err = keyloom.SaveAll(ctx, engine, false)
package keyloom
