package arbor

import (
	"errors"
	"fmt"
)

// Errors returned by the host-config. They signal a malformed element tree,
// not a transient condition, and are never retried.
var (
	ErrUnsupportedNodeType = errors.New("arbor: unsupported node type")
	ErrInsertBeforeSelf    = errors.New("arbor: cannot insert a node before itself")
	ErrNotAChild           = errors.New("arbor: reference node is not a child of the parent")
	ErrInvalidChild        = errors.New("arbor: invalid parent/child combination")
	ErrTextChild           = errors.New("arbor: text cannot be a child, use a Text node")
	ErrTextUnsupported     = errors.New("arbor: text instances are not supported, use a Text node")
	ErrAlreadyMounted      = errors.New("arbor: stage already mounted")
	ErrNotMounted          = errors.New("arbor: stage not mounted")
)

// UnsupportedNodeTypeError names a type tag with no registered node kind.
type UnsupportedNodeTypeError struct {
	Type string
}

func (e *UnsupportedNodeTypeError) Error() string {
	return fmt.Sprintf("arbor: unsupported node type %q (known types: see arbor.Kinds)", e.Type)
}

// Unwrap lets errors.Is match ErrUnsupportedNodeType.
func (e *UnsupportedNodeTypeError) Unwrap() error {
	return ErrUnsupportedNodeType
}
