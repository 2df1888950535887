package reconciler

import "time"

// HostContext is an opaque value the host threads through instance creation.
// Hosts without per-subtree state return a shared empty value.
type HostContext any

// HostConfig is the contract between the reconciler and a mutable host tree.
// I is the host instance handle and C the root container handle.
//
// Creation callbacks run in the render phase, before anything is attached:
// CreateInstance, CreateTextInstance, AppendInitialChild and
// FinalizeInitialChildren only ever touch instances that are not yet part
// of the live tree. Every other mutation runs in the commit phase, between
// PrepareForCommit and ResetAfterCommit. A callback that returns an error
// aborts the update and the error is returned from UpdateContainer.
type HostConfig[I comparable, C any] interface {
	// CreateInstance builds a detached instance for a host element.
	CreateInstance(typ string, props map[string]any, root C, ctx HostContext) (I, error)
	// CreateTextInstance builds a detached instance for a text element.
	CreateTextInstance(text string, root C, ctx HostContext) (I, error)
	// AppendInitialChild attaches child to a parent that is still being built.
	AppendInitialChild(parent, child I) error
	// FinalizeInitialChildren runs after all initial children are attached.
	// Returning true schedules CommitMount once the instance is placed.
	FinalizeInitialChildren(inst I, typ string, props map[string]any) bool
	// PrepareUpdate reports whether CommitUpdate is needed for a matched
	// element.
	PrepareUpdate(inst I, typ string, oldProps, newProps map[string]any) bool
	// ShouldSetTextContent reports whether the host renders the element's
	// content itself, in which case its children are not reconciled.
	ShouldSetTextContent(typ string, props map[string]any) bool
	// ShouldDeprioritizeSubtree is a scheduling hint. Updates here are
	// synchronous, so it only affects logging.
	ShouldDeprioritizeSubtree(typ string, props map[string]any) bool

	GetRootHostContext(root C) HostContext
	GetChildHostContext(parent HostContext, typ string, root C) HostContext
	// GetPublicInstance maps an instance to the value handed to users.
	GetPublicInstance(inst I) any

	PrepareForCommit(root C)
	ResetAfterCommit(root C)

	AppendChild(parent, child I) error
	AppendChildToContainer(root C, child I) error
	InsertBefore(parent, child, before I) error
	InsertInContainerBefore(root C, child, before I) error
	RemoveChild(parent, child I) error
	RemoveChildFromContainer(root C, child I) error

	CommitUpdate(inst I, typ string, oldProps, newProps map[string]any) error
	CommitMount(inst I, typ string, props map[string]any)
	CommitTextUpdate(inst I, oldText, newText string) error
	ResetTextContent(inst I)

	HideInstance(inst I) error
	UnhideInstance(inst I, props map[string]any) error
	HideTextInstance(inst I) error
	UnhideTextInstance(inst I, text string) error

	// Now is the host's clock, used to time commits.
	Now() time.Time
}
