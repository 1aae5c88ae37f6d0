// Package view turns datasets and user-chosen view parameters into the
// artifacts a renderer displays: filtered record sets, chart series, table
// projections, report tables and comparison rows.
//
// Everything here is synchronous. Callers rebuild a projection on every
// relevant change by calling [Build] (or [Filter] then [Project]); there is
// no hidden dependency tracking, only pure functions of their inputs.
//
// # Controllers
//
// Three small state machines keep their invariants at the boundary:
//
//   - [ColumnVisibility]: at least one column always stays visible.
//   - [TypeSelection]: per-type toggles plus a binary select-all/clear.
//   - [Favorites]: a persisted set of history ids, written on every toggle.
//
// # Formatting
//
// [Format] and [DeltaClass] are total: every input maps to a display string
// or class, none of them fail.
package view
