package reconciler

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// ErrNoType is returned when a host element has an empty Type.
var ErrNoType = errors.New("reconciler: host element without type")

// Config configures a Reconciler.
type Config struct {
	// Logger receives commit diagnostics at Debug and key warnings at Warn.
	// Nil discards them.
	Logger *slog.Logger
}

// Reconciler issues HostConfig callbacks for element tree updates.
type Reconciler[I comparable, C any] struct {
	host   HostConfig[I, C]
	logger *slog.Logger
}

// New returns a Reconciler driving host.
func New[I comparable, C any](host HostConfig[I, C], cfg Config) *Reconciler[I, C] {
	l := cfg.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Reconciler[I, C]{host: host, logger: l}
}

// Container is the persistent root of one host tree. It remembers the tree
// committed by the last successful update.
type Container[I comparable, C any] struct {
	root       C
	ctx        HostContext
	children   []*fiber[I]
	commits    int
	lastCommit time.Time
}

// CreateContainer returns an empty container bound to root.
func (r *Reconciler[I, C]) CreateContainer(root C) *Container[I, C] {
	return &Container[I, C]{root: root, ctx: r.host.GetRootHostContext(root)}
}

// Root returns the host root the container is bound to.
func (c *Container[I, C]) Root() C {
	return c.root
}

// Instances returns the top-level instances in order.
func (c *Container[I, C]) Instances() []I {
	out := make([]I, len(c.children))
	for i, f := range c.children {
		out[i] = f.inst
	}
	return out
}

// Commits returns the number of successful updates.
func (c *Container[I, C]) Commits() int {
	return c.commits
}

// LastCommit returns the host time at which the last successful commit
// finished, or the zero time.
func (c *Container[I, C]) LastCommit() time.Time {
	return c.lastCommit
}

// PublicInstance returns the public value of the container's first
// top-level instance, or nil when the container is empty.
func (r *Reconciler[I, C]) PublicInstance(c *Container[I, C]) any {
	if len(c.children) == 0 {
		return nil
	}
	return r.host.GetPublicInstance(c.children[0].inst)
}

// UpdateContainer makes the host tree under c match children. On error the
// update is abandoned. An error from the render phase leaves the live tree
// untouched and c keeps its previous committed tree.
//
// An error from the commit phase leaves the mutations issued before it in
// place. Elements already removed are dropped from c's committed tree, so
// the next update recreates them rather than touching their removed
// instances. Other elements keep their previous committed props and
// positions, and instances placed before the error stay attached without
// being recorded; the next update diffs against that previous tree.
//
// Refs are attached after CommitMount, children before parents. Refs of
// removed elements are detached before the host removes them.
func (r *Reconciler[I, C]) UpdateContainer(children []*Element, c *Container[I, C]) error {
	start := r.host.Now()
	u := &pass[I, C]{r: r, root: c.root}

	lvl, next, err := u.reconcileChildren(c.children, flatten(children), c.ctx)
	if err != nil {
		return err
	}

	r.host.PrepareForCommit(c.root)
	err = u.commitLevel(parentRef[I]{root: true}, lvl)
	if err == nil {
		err = u.commitHides()
	}
	r.host.ResetAfterCommit(c.root)
	if err != nil {
		if len(u.gone) > 0 {
			c.children = prune(c.children, u.gone)
		}
		return err
	}
	for _, f := range u.mounts {
		r.host.CommitMount(f.inst, f.typ, f.props)
	}
	for _, f := range u.attach {
		u.setRef(f.ref, f.inst)
	}

	c.children = next
	c.commits++
	c.lastCommit = r.host.Now()
	r.logger.Debug("commit",
		"created", u.created, "mutations", u.mutations, "elapsed", c.lastCommit.Sub(start))
	return nil
}

// fiber is the committed record of one element.
type fiber[I comparable] struct {
	kind        Kind
	typ         string
	key         string
	props       map[string]any
	text        string
	hidden      bool
	textContent bool
	ref         any
	inst        I
	children    []*fiber[I]
}

// work is the planned commit for one child in its new position.
type work[I comparable] struct {
	f   *fiber[I]
	old *fiber[I] // nil for a newly created fiber

	place       bool
	update      bool
	textChanged bool
	resetText   bool
	refChanged  bool
	hide        bool
	unhide      bool
	sub         *level[I]
}

// level is the planned commit for one parent's child list.
type level[I comparable] struct {
	deletions []*fiber[I]
	items     []*work[I]
}

type parentRef[I comparable] struct {
	root bool
	inst I
}

// pass holds the state of one UpdateContainer call.
type pass[I comparable, C any] struct {
	r    *Reconciler[I, C]
	root C

	mounts []*fiber[I] // CommitMount after the commit
	hides  []*fiber[I] // created hidden, hidden after placement
	attach []*fiber[I] // refs to set after the commit
	gone   map[*fiber[I]]bool

	created   int
	mutations int
}

// keysFor returns the match key for each element: "k:" plus the element
// key, or "i:" plus its index for unkeyed elements. A repeated key is
// reported and disambiguated by index so it never matches twice.
func (u *pass[I, C]) keysFor(elems []*Element) []string {
	keys := make([]string, len(elems))
	seen := make(map[string]bool, len(elems))
	for i, e := range elems {
		k := "i:" + strconv.Itoa(i)
		if e.Key != "" {
			k = "k:" + e.Key
		}
		if seen[k] {
			u.r.logger.Warn("duplicate element key", "key", e.Key, "index", i)
			k = k + "#" + strconv.Itoa(i)
		}
		seen[k] = true
		keys[i] = k
	}
	return keys
}

func sameType[I comparable](f *fiber[I], e *Element) bool {
	return f.kind == e.Kind && f.typ == e.Type
}

// reconcileChildren plans the transition from old to elems and returns the
// plan together with the new fiber list.
func (u *pass[I, C]) reconcileChildren(old []*fiber[I], elems []*Element, ctx HostContext) (*level[I], []*fiber[I], error) {
	oldIndex := make(map[string]int, len(old))
	for i, f := range old {
		oldIndex[f.key] = i
	}
	used := make([]bool, len(old))

	lvl := &level[I]{}
	next := make([]*fiber[I], 0, len(elems))
	lastPlaced := 0
	for i, key := range u.keysFor(elems) {
		e := elems[i]
		var w *work[I]
		if oi, ok := oldIndex[key]; ok && !used[oi] && sameType(old[oi], e) {
			used[oi] = true
			var err error
			if w, err = u.updateFiber(old[oi], e, ctx); err != nil {
				return nil, nil, err
			}
			if oi < lastPlaced {
				w.place = true
			} else {
				lastPlaced = oi
			}
		} else {
			f, err := u.mountFiber(e, key, ctx)
			if err != nil {
				return nil, nil, err
			}
			w = &work[I]{f: f, place: true}
		}
		lvl.items = append(lvl.items, w)
		next = append(next, w.f)
	}
	for i, f := range old {
		if !used[i] {
			lvl.deletions = append(lvl.deletions, f)
		}
	}
	return lvl, next, nil
}

// updateFiber plans the update of a matched fiber.
func (u *pass[I, C]) updateFiber(old *fiber[I], e *Element, ctx HostContext) (*work[I], error) {
	host := u.r.host
	f := &fiber[I]{
		kind:   old.kind,
		typ:    old.typ,
		key:    old.key,
		props:  e.Props,
		text:   e.Text,
		hidden: e.Hidden,
		ref:    e.Ref,
		inst:   old.inst,
	}
	w := &work[I]{
		f:          f,
		old:        old,
		refChanged: !sameRef(old.ref, e.Ref),
		hide:       e.Hidden && !old.hidden,
		unhide:     !e.Hidden && old.hidden,
	}
	if old.kind == KindText {
		w.textChanged = old.text != e.Text
		u.queueRef(w)
		return w, nil
	}

	w.update = host.PrepareUpdate(old.inst, old.typ, old.props, e.Props)
	f.textContent = host.ShouldSetTextContent(e.Type, e.Props)
	w.resetText = old.textContent && !f.textContent
	if f.textContent {
		if len(old.children) > 0 {
			w.sub = &level[I]{deletions: old.children}
		}
		u.queueRef(w)
		return w, nil
	}
	sub, kids, err := u.reconcileChildren(old.children, flatten(e.Children),
		host.GetChildHostContext(ctx, e.Type, u.root))
	if err != nil {
		return nil, err
	}
	f.children = kids
	w.sub = sub
	u.queueRef(w)
	return w, nil
}

// queueRef schedules a changed ref of a matched fiber for attachment.
func (u *pass[I, C]) queueRef(w *work[I]) {
	if w.refChanged && w.f.ref != nil {
		u.attach = append(u.attach, w.f)
	}
}

// mountFiber creates the instance for e and its whole subtree, assembled
// off-tree with AppendInitialChild.
func (u *pass[I, C]) mountFiber(e *Element, key string, ctx HostContext) (*fiber[I], error) {
	host := u.r.host
	f := &fiber[I]{
		kind:   e.Kind,
		typ:    e.Type,
		key:    key,
		props:  e.Props,
		text:   e.Text,
		hidden: e.Hidden,
		ref:    e.Ref,
	}
	if e.Kind == KindText {
		inst, err := host.CreateTextInstance(e.Text, u.root, ctx)
		if err != nil {
			return nil, fmt.Errorf("reconciler: create text instance: %w", err)
		}
		f.inst = inst
	} else {
		if e.Type == "" {
			return nil, ErrNoType
		}
		inst, err := host.CreateInstance(e.Type, e.Props, u.root, ctx)
		if err != nil {
			return nil, fmt.Errorf("reconciler: create %q: %w", e.Type, err)
		}
		f.inst = inst
		if host.ShouldDeprioritizeSubtree(e.Type, e.Props) {
			u.r.logger.Debug("deprioritized subtree mounted synchronously", "type", e.Type)
		}
		f.textContent = host.ShouldSetTextContent(e.Type, e.Props)
		if !f.textContent {
			childCtx := host.GetChildHostContext(ctx, e.Type, u.root)
			kids := flatten(e.Children)
			for i, ck := range u.keysFor(kids) {
				cf, err := u.mountFiber(kids[i], ck, childCtx)
				if err != nil {
					return nil, err
				}
				if err := host.AppendInitialChild(inst, cf.inst); err != nil {
					return nil, fmt.Errorf("reconciler: append initial child to %q: %w", e.Type, err)
				}
				f.children = append(f.children, cf)
			}
		}
		if host.FinalizeInitialChildren(inst, e.Type, e.Props) {
			u.mounts = append(u.mounts, f)
		}
	}
	if e.Hidden {
		u.hides = append(u.hides, f)
	}
	if f.ref != nil {
		u.attach = append(u.attach, f)
	}
	u.created++
	return f, nil
}

// commitLevel applies a planned level under p.
func (u *pass[I, C]) commitLevel(p parentRef[I], lvl *level[I]) error {
	host := u.r.host
	for _, f := range lvl.deletions {
		u.detachRefs(f)
		if err := u.remove(p, f.inst); err != nil {
			return err
		}
		if u.gone == nil {
			u.gone = make(map[*fiber[I]]bool)
		}
		u.gone[f] = true
	}
	for i, w := range lvl.items {
		f := w.f
		if w.refChanged && w.old.ref != nil {
			u.setRef(w.old.ref, zero[I]())
		}
		if w.resetText {
			host.ResetTextContent(f.inst)
			u.mutations++
		}
		if w.sub != nil {
			if err := u.commitLevel(parentRef[I]{inst: f.inst}, w.sub); err != nil {
				return err
			}
		}
		if w.place {
			if err := u.place(p, f.inst, nextStable(lvl.items, i)); err != nil {
				return err
			}
		}
		if w.update {
			if err := host.CommitUpdate(f.inst, f.typ, w.old.props, f.props); err != nil {
				return fmt.Errorf("reconciler: update %q: %w", f.typ, err)
			}
			u.mutations++
		}
		if w.textChanged {
			if err := host.CommitTextUpdate(f.inst, w.old.text, f.text); err != nil {
				return fmt.Errorf("reconciler: update text: %w", err)
			}
			u.mutations++
		}
		if w.hide {
			if err := u.setHidden(f, true); err != nil {
				return err
			}
		}
		if w.unhide {
			if err := u.setHidden(f, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// nextStable returns the first child after i that keeps its place.
func nextStable[I comparable](items []*work[I], i int) *I {
	for _, w := range items[i+1:] {
		if !w.place {
			return &w.f.inst
		}
	}
	return nil
}

func (u *pass[I, C]) place(p parentRef[I], child I, before *I) error {
	host := u.r.host
	u.mutations++
	var err error
	switch {
	case before != nil && p.root:
		err = host.InsertInContainerBefore(u.root, child, *before)
	case before != nil:
		err = host.InsertBefore(p.inst, child, *before)
	case p.root:
		err = host.AppendChildToContainer(u.root, child)
	default:
		err = host.AppendChild(p.inst, child)
	}
	if err != nil {
		return fmt.Errorf("reconciler: place child: %w", err)
	}
	return nil
}

func (u *pass[I, C]) remove(p parentRef[I], child I) error {
	host := u.r.host
	u.mutations++
	var err error
	if p.root {
		err = host.RemoveChildFromContainer(u.root, child)
	} else {
		err = host.RemoveChild(p.inst, child)
	}
	if err != nil {
		return fmt.Errorf("reconciler: remove child: %w", err)
	}
	return nil
}

func (u *pass[I, C]) setHidden(f *fiber[I], hidden bool) error {
	host := u.r.host
	u.mutations++
	var err error
	switch {
	case f.kind == KindText && hidden:
		err = host.HideTextInstance(f.inst)
	case f.kind == KindText:
		err = host.UnhideTextInstance(f.inst, f.text)
	case hidden:
		err = host.HideInstance(f.inst)
	default:
		err = host.UnhideInstance(f.inst, f.props)
	}
	if err != nil {
		return fmt.Errorf("reconciler: set hidden=%t: %w", hidden, err)
	}
	return nil
}

// commitHides hides instances that were created hidden, now that they are
// placed.
func (u *pass[I, C]) commitHides() error {
	for _, f := range u.hides {
		if err := u.setHidden(f, true); err != nil {
			return err
		}
	}
	return nil
}

func zero[I any]() I {
	var z I
	return z
}

// setRef hands inst to ref. A non-nil ref that does not accept the host's
// instance type is reported and ignored.
func (u *pass[I, C]) setRef(ref any, inst I) {
	switch r := ref.(type) {
	case nil:
	case Ref[I]:
		r.SetRef(inst)
	default:
		u.r.logger.Warn("ref ignored: no SetRef method for the host instance type",
			"ref", fmt.Sprintf("%T", ref))
	}
}

// detachRefs clears the refs of f and its subtree, children first.
func (u *pass[I, C]) detachRefs(f *fiber[I]) {
	for _, c := range f.children {
		u.detachRefs(c)
	}
	u.setRef(f.ref, zero[I]())
}

// prune drops removed fibers from a committed tree after a failed commit.
func prune[I comparable](fs []*fiber[I], gone map[*fiber[I]]bool) []*fiber[I] {
	out := make([]*fiber[I], 0, len(fs))
	for _, f := range fs {
		if gone[f] {
			continue
		}
		f.children = prune(f.children, gone)
		out = append(out, f)
	}
	return out
}
