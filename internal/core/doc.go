// Package core provides the server-side business logic for equipment
// telemetry files.
//
// It is independent of any transport: the web handlers and tests drive it
// directly.
//
// # Ingestion
//
// [ParseCSV] reads a file through BOM-skipping and UTF-8 sanitizing readers
// and checks for the five required columns. Numeric cells that cannot be
// parsed become invalid metrics instead of failing the file.
//
// # Summaries and diffs
//
// [ComputeStats] produces the dataset summary (count, rounded averages, type
// distribution, preview). [Compare] reconciles two files by equipment name.
//
// # History
//
// [Service] stores uploads through a [HistoryStore] ([PGStore] in
// production, [MemoryStore] in tests), keeping only the newest
// HISTORY_LIMIT files. Uploads and comparisons share an [UploadLimiter].
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with support codes by
// [MapError]; see error_messages.go for the code list.
package core
