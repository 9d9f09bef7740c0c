package concept

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/p-n-ai/taleem/internal/docstore"
)

// Collection is the document store collection holding concept records.
const Collection = "concepts"

const listingKey = "concepts:listing"

// ListingCache stores the sorted concept listing between fetches.
// Implemented by platform/cache.Cache.
type ListingCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Option configures a Repository.
type Option func(*Repository)

// WithCollection overrides the collection name.
func WithCollection(name string) Option {
	return func(r *Repository) {
		if name != "" {
			r.collection = name
		}
	}
}

// WithListingCache caches successful listings for ttl.
func WithListingCache(c ListingCache, ttl time.Duration) Option {
	return func(r *Repository) {
		r.cache = c
		r.ttl = ttl
	}
}

// Repository reads concepts from a document store. Store failures never reach
// callers: they are logged and reported as an empty listing or NotFound.
type Repository struct {
	store      docstore.Store
	collection string
	cache      ListingCache
	ttl        time.Duration
}

// NewRepository creates a repository over store.
func NewRepository(store docstore.Store, opts ...Option) *Repository {
	r := &Repository{store: store, collection: Collection}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Collection returns the collection the repository reads from.
func (r *Repository) Collection() string {
	return r.collection
}

// List returns every concept ordered by grade level, then sequence order.
// Documents with equal keys keep store iteration order.
func (r *Repository) List(ctx context.Context) []Concept {
	if r.cache != nil {
		var cached []Concept
		ok, err := r.cache.GetJSON(ctx, r.cacheKey(), &cached)
		if err != nil {
			slog.Warn("concept listing cache read failed", "error", err)
		} else if ok {
			return cached
		}
	}

	docs, err := r.store.FetchAll(ctx, r.collection)
	if err != nil {
		slog.Error("fetching concepts", "collection", r.collection, "error", err)
		return []Concept{}
	}

	concepts := make([]Concept, 0, len(docs))
	for _, doc := range docs {
		concepts = append(concepts, Decode(doc.ID, doc.Fields))
	}
	SortConcepts(concepts)

	if r.cache != nil {
		if err := r.cache.SetJSON(ctx, r.cacheKey(), concepts, r.ttl); err != nil {
			slog.Warn("concept listing cache write failed", "error", err)
		}
	}
	return concepts
}

// Get returns the concept stored under id. found is false when the record is
// missing or the store could not be read.
func (r *Repository) Get(ctx context.Context, id string) (Concept, bool) {
	if id == "" {
		return Concept{}, false
	}

	doc, found, err := r.store.Fetch(ctx, r.collection, id)
	if err != nil {
		slog.Error("fetching concept", "collection", r.collection, "id", id, "error", err)
		return Concept{}, false
	}
	if !found {
		return Concept{}, false
	}
	return Decode(doc.ID, doc.Fields), true
}

// Invalidate drops the cached listing so the next List reads the store.
func (r *Repository) Invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, r.cacheKey()); err != nil {
		slog.Warn("concept listing cache delete failed", "error", err)
	}
}

func (r *Repository) cacheKey() string {
	return listingKey + ":" + r.collection
}

// SortConcepts orders concepts by (GradeLevel, SequenceOrder), keeping the
// relative order of equal keys.
func SortConcepts(concepts []Concept) {
	slices.SortStableFunc(concepts, func(a, b Concept) int {
		if c := cmp.Compare(a.GradeLevel, b.GradeLevel); c != 0 {
			return c
		}
		return cmp.Compare(a.SequenceOrder, b.SequenceOrder)
	})
}
