// Package costsheet maintains the execution statement (실행 내역서) of a
// construction or energy project: an editable cost ledger and the figures
// derived from it.
//
// The core functionalities include:
//   - Line items: the rows of the ledger (process, item, spec, unit, quantity,
//     unit price, vendor, note) and the coercion rules applied when a field
//     is written.
//   - Ledger: an ordered, copy-on-write collection of line items. Every
//     operation returns a new snapshot.
//   - Metrics: execution amount, revenue, execution unit price and execution
//     rate, computed with exact decimal arithmetic and never leaking NaN or
//     Infinity to the display layer.
//   - Grouping: the display sequence with one subtotal row per process
//     category, in order of first occurrence.
//   - State and Session: the full state (ledger and project metadata), its
//     canonical JSON record, and a container that applies transitions and
//     persists every change.
//
// The persist, share and sheet subpackages move a State in and out of
// durable storage, shareable URLs and spreadsheet documents. They all rely
// on [DecodeState] so that restored fields are defaulted the same way.
package costsheet
