// Package ledger holds the derived-state core of go-lend-keeper: the local
// record store fed by pushed snapshots, the status rule, aggregate
// statistics, the filtered and searched view, spreadsheet row normalization
// and CSV export.
//
// Everything here is pure or guarded by its own lock. Network, storage and
// UI concerns live in the service, adapter and tui packages.
package ledger
