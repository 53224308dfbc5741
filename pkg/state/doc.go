// Package state persists named filter presets: saved FilterRecords that a
// user (or everyone, for shared presets) can re-apply to a selector.
//
// Responsibilities:
//   - Store[T] only loads/saves a single snapshot for a single Ref.
//   - Presets loads, saves and mutates FilterRecord snapshots, normalizing them
//     against the catalog and enforcing ETag-based optimistic concurrency.
//   - The cascade engine stays persistence-agnostic; all persistence logic
//     stays behind Store implementations supplied by consumers.
//
// Data flow:
//
//	Store -> Presets.Load -> Engine.ApplyRecord -> cascade.Selection
//
// Deterministic keys:
//
//	Ref.Identifier() provides the canonical storage key:
//	`shared/<domain>/<name>` or `owner/<owner>/<domain>/<name>`.
package state
