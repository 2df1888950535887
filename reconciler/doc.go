// Package reconciler drives a mutable host tree from immutable element
// descriptions.
//
// A host implements [HostConfig] for its instance handle type I and root
// container type C. [Reconciler.UpdateContainer] compares the new element
// list with the tree committed by the previous call and issues the smallest
// set of host callbacks that makes the host tree match.
//
// # Matching
//
// Siblings are matched by key when they have one and by position when they
// do not. A matched element keeps its instance when kind and type agree;
// otherwise the old instance is removed and a new one is created. Fragments
// are flattened into their parent's child list.
//
// # Phases
//
// An update runs in two phases. The render phase creates and assembles new
// subtrees off-tree and computes moves. If any creation fails the update is
// abandoned before the live tree is touched. The commit phase then applies,
// per parent: removals first, then for each child in order its own subtree,
// its placement (InsertBefore the next child that did not move, otherwise
// AppendChild) and its property update.
//
// Moves follow the last-placed-index rule: a matched child whose previous
// index is lower than that of a child already kept in place is moved.
// Reordering [1 2 3] to [3 1 2] therefore moves 1 and 2 and leaves 3.
//
// # Refs
//
// An element's Ref (taken from a "ref" prop by [H]) that implements
// [Ref] for the host instance type receives the instance after the commit
// that places it, and the zero instance just before the element is removed
// or its ref replaced. Host callbacks never see refs.
package reconciler
