// Package feedback defines the FeedbackEntry data model shared by every other
// package: the Entry type and its JSON layout, the Status enum, the defaults
// applied to a new entry and the client side id generator.
//
// Entries are created open and only ever change their status afterwards.
// An empty ElementID marks a page-level comment and is encoded as JSON null.
package feedback
