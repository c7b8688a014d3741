// Package verify ties the relationship machinery together: it owns the
// per-classloader relationship store, runs the snippet lifecycle around
// each class verification pass, and talks to the shared blob cache.
package verify

import (
	"errors"

	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/verdict/cache"
	"github.com/chazu/verdict/loader"
	"github.com/chazu/verdict/names"
	"github.com/chazu/verdict/relation"
	"github.com/chazu/verdict/snippet"
)

var log = commonlog.GetLogger("verdict.verify")

// Verifier is the relationship-verification front end for one
// classloader. Distinct classes may be verified concurrently; the
// underlying relationship store serializes its own mutation.
type Verifier struct {
	view  loader.View
	store *relation.Store
	blobs cache.Store // optional; nil disables the warm path
}

// New creates a verifier over a loaded-class view. The relationship
// store's node pool is sized by the loader category. blobs may be nil.
func New(view loader.View, category loader.Category, blobs cache.Store) *Verifier {
	return &Verifier{
		view:  view,
		store: relation.NewStore(category),
		blobs: blobs,
	}
}

// NewWithStore creates a verifier around an existing relationship store.
func NewWithStore(view loader.View, store *relation.Store, blobs cache.Store) *Verifier {
	return &Verifier{view: view, store: store, blobs: blobs}
}

// Relationships returns the verifier's relationship store.
func (v *Verifier) Relationships() *relation.Store {
	return v.store
}

// Pass holds the snippet state for verifying one class. A pass lives on
// a single goroutine from Begin to Finish and is then discarded.
type Pass struct {
	className string
	table     *names.Table
	set       *snippet.Set
	cached    []snippet.NamePair
}

// FromCache reports whether the pass replays cached snippets instead of
// recording fresh ones.
func (p *Pass) FromCache() bool {
	return p.cached != nil
}

// Begin starts a verification pass for a class. If the cache holds a
// snippet blob for the class, the decoded pairs replay in Finish and
// recording is skipped; any cache or decode failure just falls back to
// the fresh path.
func (v *Verifier) Begin(className string) *Pass {
	p := &Pass{className: className}

	if v.blobs != nil {
		blob, err := v.blobs.Find(cache.Key(className))
		switch {
		case err == nil:
			pairs, derr := snippet.Decode(blob)
			if derr == nil {
				p.cached = pairs
				return p
			}
			log.Errorf("discarding undecodable snippet blob for %s: %s", className, derr.Error())
		case !errors.Is(err, cache.ErrNotFound):
			log.Warningf("snippet cache lookup for %s failed: %s", className, err.Error())
		}
	}

	p.table = names.NewTable()
	p.set = snippet.NewSet(p.table)
	return p
}

// Record adds a (child, parent) relationship assertion to the pass.
// Returns whether the pair was newly recorded. On a cache-sourced pass
// this is a no-op: the cached blob already holds the pass's snippets.
func (p *Pass) Record(childName, parentName string) bool {
	if p.cached != nil {
		return false
	}
	return p.set.Record(p.table.Intern(childName), p.table.Intern(parentName))
}

// Finish processes the pass's snippets once bytecode analysis completes.
// Every pair is either checked immediately or deferred into the
// relationship store. On a successful fresh pass with snippets, the
// encoded set is offered to the cache; cache errors are logged and
// swallowed. Returns a *snippet.ViolationError if a resolved check
// failed.
func (v *Verifier) Finish(p *Pass) error {
	if p.cached != nil {
		return snippet.Process(p.cached, v.view, v.store)
	}

	if p.set.Count() == 0 {
		return nil
	}

	if err := snippet.Process(p.set.NamePairs(), v.view, v.store); err != nil {
		return err
	}

	if v.blobs != nil {
		v.storeBlob(p)
	}

	// The pass-local table dies with the pass.
	p.set = nil
	p.table = nil
	return nil
}

// storeBlob encodes the pass's snippet set and offers it to the cache.
func (v *Verifier) storeBlob(p *Pass) {
	blob, err := snippet.Encode(p.set)
	if err != nil {
		log.Errorf("encoding snippet blob for %s failed: %s", p.className, err.Error())
		return
	}
	if err := v.blobs.Put(cache.Key(p.className), blob); err != nil {
		log.Warningf("storing snippet blob for %s failed: %s", p.className, err.Error())
	}
}

// ClassLoaded validates pending relationships for a class that just
// finished loading, before it becomes visible to other threads. Returns
// the class that violated a relationship, or nil if the class has no
// remaining obligations.
func (v *Verifier) ClassLoaded(className string, c loader.Class) loader.Class {
	return v.store.Validate(v.view, className, c)
}

// Close tears down the relationship store. Call once, when the owning
// classloader is destroyed.
func (v *Verifier) Close() {
	v.store.Destroy()
}
