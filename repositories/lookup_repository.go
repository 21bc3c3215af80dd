package repositories

import (
	"sync"

	"gorm.io/gorm"

	"app-purchase-request-workflow/apperr"
	"app-purchase-request-workflow/models"
)

// LookupRepository resolves (type_code, code) pairs among active rows,
// with a read-through in-memory cache invalidated on write — the hot
// path called out in spec.md §4.1.
type LookupRepository struct {
	db *gorm.DB

	mu    sync.RWMutex
	cache map[string]models.Lookup
}

func NewLookupRepository(db *gorm.DB) *LookupRepository {
	return &LookupRepository{db: db, cache: make(map[string]models.Lookup)}
}

func cacheKey(typeCode, code string) string { return typeCode + "::" + code }

// Resolve returns the active Lookup for (typeCode, code), or
// apperr.KindLookupNotFound if missing/inactive.
func (r *LookupRepository) Resolve(typeCode, code string) (*models.Lookup, error) {
	key := cacheKey(typeCode, code)

	r.mu.RLock()
	if cached, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		cp := cached
		return &cp, nil
	}
	r.mu.RUnlock()

	var l models.Lookup
	err := r.db.Joins("JOIN lookup_types ON lookup_types.id = lookups.type_id").
		Where("lookup_types.code = ? AND lookups.code = ? AND lookups.active = ? AND lookup_types.active = ?",
			typeCode, code, true, true).
		First(&l).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.Newf(apperr.KindLookupNotFound, "lookup %s/%s not found or inactive", typeCode, code)
	}
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = l
	r.mu.Unlock()

	return &l, nil
}

// Invalidate drops every cached entry. Called after any write to the
// lookup registry.
func (r *LookupRepository) Invalidate() {
	r.mu.Lock()
	r.cache = make(map[string]models.Lookup)
	r.mu.Unlock()
}
