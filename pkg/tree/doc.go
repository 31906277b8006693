// Package tree provides the widget arena: every widget instance is owned by
// an [Arena] and addressed through an opaque, copyable [ID].
//
// Ids are generation checked. Removing a widget bumps the generation of its
// slot, so a removed id never resolves again even after the slot is reused.
// Parent/child structure is not stored by the arena; it is whatever each
// node reports from Children, which [Arena.RemoveSubtree] treats as the
// ground truth of ownership.
//
// The arena also stores the per-widget layout results (position relative to
// the parent and measured size) so that geometry is read by value and never
// aliased into widget state.
package tree
