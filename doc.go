// Package dimschema is the schema-driven document core of the Dimension editor.
//
// A Dimension is a directory of JSON files describing rooms, placeable objects,
// hotspots and scripted action trees. This module provides:
//
// - A declarative schema model with self-referential schemas (schema/)
// - A registry mapping document kinds (file base names) to schemas (registry/)
// - Default document generation from a schema (template/)
// - A recursive schema-aware editor and validator over untyped JSON (editor/)
// - Draft-to-JSON builders for action trees and room objects (draft/)
// - A stable error model via Issues (JSON Pointer, code, message, severity)
//
// Design policy:
// - Keep only the shared error model in the root package; everything else
//   lives in focused subpackages.
// - Documents are plain node trees; schemas are hints layered on top, never
//   wrappers around the data.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	reg, err := registry.Initialize()
//	s, ok := reg.Resolve(registry.KindFromPath("North/Lockbox.json"))
//	doc := template.Instantiate(s)
//	iss := editor.Inspect(editor.Nop{}, s, doc)
package dimschema
