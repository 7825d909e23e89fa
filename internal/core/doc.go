// Package core provides the review logic for MedQA annotation batches.
//
// This package holds all domain logic independent of any UI or transport
// layer. It can be used by web handlers, tools, or tests without modification.
//
// # Architecture
//
//   - Record model: each JSONL line is kept as an ordered JSON object, so keys
//     the tool does not know about survive a round trip in place.
//   - Batch Store: [ParseBatch], [Export] and [DeriveExportName] move a whole
//     batch in and out; [BatchStore] holds the current batch of a session.
//   - Record Editor: [SetTranslatedField], [SetTranslatedOption],
//     [SetLabelField] and [CollectUniqueLabels].
//   - Service: one [BatchStore] per review session, idle-session reaping, and
//     an optional edit journal ([AuditStore]).
//
// # Label Fields
//
// The three meta_info_* fields hold tags either as a JSON array or as one
// ";"-joined string. [LabelValue] hides the difference: every read goes
// through [LabelValue.Tags], and every write stores the canonical list
// produced by [ParseLabels]:
//
//	ParseLabels("Cardiology; Surgery ; ") // ["Cardiology", "Surgery"]
//	ParseLabels("OnlyOneTag")             // ["OnlyOneTag"]
//	ParseLabels("")                       // []
//
// Only empty segments are dropped; repeated tags are kept.
//
// # Error Handling
//
// A malformed line aborts a load with a [*ParseError] carrying the line
// number. An option edit for a key missing from "options" returns a
// [*KeyMismatchError] and changes nothing. Values that JSON cannot represent
// are written as text on export rather than failing it. [MapError] maps any
// error to a coded [UserMessage].
package core
