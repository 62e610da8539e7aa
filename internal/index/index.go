package index

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"time"

	"github.com/binaahub/binaa-core/internal/kv"
	"github.com/binaahub/binaa-core/internal/model"
)

// Document is the persisted index: every sub-map keys a normalized value to
// a sorted list of entity ids.
type Document struct {
	ByCategory     map[string][]string `json:"byCategory"`
	BySkills       map[string][]string `json:"bySkills"`
	ByLocation     map[string][]string `json:"byLocation"`
	ByAvailability map[string][]string `json:"byAvailability"`
	ByProviderType map[string][]string `json:"byProviderType"`

	OfferingsByCategory map[string][]string `json:"offeringsByCategory"`

	BeneficiariesByService  map[string][]string `json:"beneficiariesByService"`
	BeneficiariesByLocation map[string][]string `json:"beneficiariesByLocation"`
}

func emptyDocument() Document {
	return Document{
		ByCategory:              map[string][]string{},
		BySkills:                map[string][]string{},
		ByLocation:              map[string][]string{},
		ByAvailability:          map[string][]string{},
		ByProviderType:          map[string][]string{},
		OfferingsByCategory:     map[string][]string{},
		BeneficiariesByService:  map[string][]string{},
		BeneficiariesByLocation: map[string][]string{},
	}
}

// providerMaps returns the sub-maps derived from ServiceProvider documents.
func (d *Document) providerMaps() []map[string][]string {
	return []map[string][]string{
		d.ByCategory, d.BySkills, d.ByLocation, d.ByAvailability,
		d.ByProviderType, d.OfferingsByCategory,
	}
}

// beneficiaryMaps returns the sub-maps derived from Beneficiary documents.
func (d *Document) beneficiaryMaps() []map[string][]string {
	return []map[string][]string{d.BeneficiariesByService, d.BeneficiariesByLocation}
}

// Manager builds and maintains the index document. It reads the source
// collections straight from the KV adapter, so it has no repository
// dependency and the repositories can treat it as an opaque notification
// hook.
type Manager struct {
	kv  kv.Adapter
	log *slog.Logger
}

// NewManager creates an index manager over the adapter.
func NewManager(adapter kv.Adapter, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{kv: adapter, log: log}
}

// Rebuild clears and re-derives every sub-map from the full provider and
// beneficiary collections. This is the recovery path after corruption or
// bulk import; incremental updates keep the same content current between
// rebuilds.
func (m *Manager) Rebuild(ctx context.Context) bool {
	rebuildCount.Inc()
	doc := emptyDocument()
	for _, p := range m.loadProviders(ctx) {
		insertProvider(&doc, p)
	}
	for _, b := range m.loadBeneficiaries(ctx) {
		insertBeneficiary(&doc, b)
	}
	return m.save(ctx, doc)
}

// UpdateProvider refreshes every bucket for one provider: stale entries are
// removed from all provider sub-maps first, then the current field values
// are reinserted. A provider deleted from the source collection simply
// never reinserts.
func (m *Manager) UpdateProvider(ctx context.Context, id string) bool {
	updateCount.WithLabelValues(model.EntityServiceProvider).Inc()
	doc := m.load(ctx)
	scrub(doc.providerMaps(), id)
	for _, p := range m.loadProviders(ctx) {
		if p.ID == id {
			insertProvider(&doc, p)
			break
		}
	}
	return m.save(ctx, doc)
}

// UpdateBeneficiary is UpdateProvider for the beneficiary sub-maps.
func (m *Manager) UpdateBeneficiary(ctx context.Context, id string) bool {
	updateCount.WithLabelValues(model.EntityBeneficiary).Inc()
	doc := m.load(ctx)
	scrub(doc.beneficiaryMaps(), id)
	for _, b := range m.loadBeneficiaries(ctx) {
		if b.ID == id {
			insertBeneficiary(&doc, b)
			break
		}
	}
	return m.save(ctx, doc)
}

// Remove scrubs an id from every sub-map of the given kind and prunes the
// buckets it emptied.
func (m *Manager) Remove(ctx context.Context, kind, id string) bool {
	removeCount.WithLabelValues(kind).Inc()
	doc := m.load(ctx)
	switch kind {
	case model.EntityServiceProvider:
		scrub(doc.providerMaps(), id)
	case model.EntityBeneficiary:
		scrub(doc.beneficiaryMaps(), id)
	default:
		return true
	}
	return m.save(ctx, doc)
}

// EntityChanged implements the repository layer's Indexer hook.
func (m *Manager) EntityChanged(ctx context.Context, kind, id string) {
	switch kind {
	case model.EntityServiceProvider:
		m.UpdateProvider(ctx, id)
	case model.EntityBeneficiary:
		m.UpdateBeneficiary(ctx, id)
	}
}

// EntityRemoved implements the repository layer's Indexer hook.
func (m *Manager) EntityRemoved(ctx context.Context, kind, id string) {
	m.Remove(ctx, kind, id)
}

// Criteria is a conjunction of provider filters; empty fields are ignored.
type Criteria struct {
	Category     string
	Skill        string
	Location     string
	Availability string
	ProviderType string
}

// QueryProviders returns the ids of providers matching every non-empty
// criterion, sorted. With zero criteria it returns the full provider set.
//
// AND semantics only; no OR or NOT. Callers needing OR issue one query per
// alternative and union the id sets themselves.
func (m *Manager) QueryProviders(ctx context.Context, c Criteria) []string {
	start := time.Now()
	defer func() { queryDuration.Observe(time.Since(start).Seconds()) }()

	doc := m.load(ctx)
	buckets := [][]string{}
	add := func(sub map[string][]string, key string) {
		if key == "" {
			return
		}
		buckets = append(buckets, sub[normalizeKey(key)])
	}
	add(doc.ByCategory, c.Category)
	add(doc.BySkills, c.Skill)
	add(doc.ByLocation, c.Location)
	add(doc.ByAvailability, c.Availability)
	add(doc.ByProviderType, c.ProviderType)

	if len(buckets) == 0 {
		all := []string{}
		for _, p := range m.loadProviders(ctx) {
			all = append(all, p.ID)
		}
		slices.Sort(all)
		return all
	}

	result := buckets[0]
	for _, b := range buckets[1:] {
		result = intersect(result, b)
		if len(result) == 0 {
			break
		}
	}
	if result == nil {
		result = []string{}
	}
	out := slices.Clone(result)
	slices.Sort(out)
	return out
}

// QueryBeneficiaries returns the ids of beneficiaries matching the given
// required service and/or location, with the same AND-only semantics.
func (m *Manager) QueryBeneficiaries(ctx context.Context, service, location string) []string {
	doc := m.load(ctx)
	buckets := [][]string{}
	if service != "" {
		buckets = append(buckets, doc.BeneficiariesByService[normalizeKey(service)])
	}
	if location != "" {
		buckets = append(buckets, doc.BeneficiariesByLocation[normalizeKey(location)])
	}
	if len(buckets) == 0 {
		all := []string{}
		for _, b := range m.loadBeneficiaries(ctx) {
			all = append(all, b.ID)
		}
		slices.Sort(all)
		return all
	}
	result := buckets[0]
	for _, b := range buckets[1:] {
		result = intersect(result, b)
	}
	if result == nil {
		result = []string{}
	}
	out := slices.Clone(result)
	slices.Sort(out)
	return out
}

// Snapshot returns the current index document; the CLI and golden tests
// read it.
func (m *Manager) Snapshot(ctx context.Context) Document {
	return m.load(ctx)
}

func (m *Manager) load(ctx context.Context) Document {
	raw := m.kv.Get(ctx, model.KeyServiceIndex)
	if raw == nil {
		return emptyDocument()
	}
	doc := emptyDocument()
	if err := json.Unmarshal(raw, &doc); err != nil {
		m.log.Error("service index unreadable, starting empty", "err", err)
		return emptyDocument()
	}
	// Sub-maps lost to partial corruption come back empty.
	empty := emptyDocument()
	fix := func(got *map[string][]string, fresh map[string][]string) {
		if *got == nil {
			*got = fresh
		}
	}
	fix(&doc.ByCategory, empty.ByCategory)
	fix(&doc.BySkills, empty.BySkills)
	fix(&doc.ByLocation, empty.ByLocation)
	fix(&doc.ByAvailability, empty.ByAvailability)
	fix(&doc.ByProviderType, empty.ByProviderType)
	fix(&doc.OfferingsByCategory, empty.OfferingsByCategory)
	fix(&doc.BeneficiariesByService, empty.BeneficiariesByService)
	fix(&doc.BeneficiariesByLocation, empty.BeneficiariesByLocation)
	return doc
}

func (m *Manager) save(ctx context.Context, doc Document) bool {
	data, err := json.Marshal(doc)
	if err != nil {
		m.log.Error("service index marshal failed", "err", err)
		return false
	}
	return m.kv.Set(ctx, model.KeyServiceIndex, data)
}

func (m *Manager) loadProviders(ctx context.Context) []model.ServiceProvider {
	raw := m.kv.Get(ctx, model.KeyServiceProviders)
	if raw == nil {
		return nil
	}
	var providers []model.ServiceProvider
	if err := json.Unmarshal(raw, &providers); err != nil {
		m.log.Error("provider collection unreadable", "err", err)
		return nil
	}
	return providers
}

func (m *Manager) loadBeneficiaries(ctx context.Context) []model.Beneficiary {
	raw := m.kv.Get(ctx, model.KeyBeneficiaries)
	if raw == nil {
		return nil
	}
	var beneficiaries []model.Beneficiary
	if err := json.Unmarshal(raw, &beneficiaries); err != nil {
		m.log.Error("beneficiary collection unreadable", "err", err)
		return nil
	}
	return beneficiaries
}

func insertProvider(doc *Document, p model.ServiceProvider) {
	for _, c := range p.Categories {
		addToBucket(doc.ByCategory, c, p.ID)
	}
	for _, s := range p.Skills {
		addToBucket(doc.BySkills, s, p.ID)
	}
	addToBucket(doc.ByLocation, p.Location, p.ID)
	addToBucket(doc.ByAvailability, p.Availability, p.ID)
	addToBucket(doc.ByProviderType, p.ProviderType, p.ID)
	for _, o := range p.Offerings {
		addToBucket(doc.OfferingsByCategory, o.Category, p.ID)
	}
}

func insertBeneficiary(doc *Document, b model.Beneficiary) {
	for _, s := range b.RequiredServices {
		addToBucket(doc.BeneficiariesByService, s, b.ID)
	}
	addToBucket(doc.BeneficiariesByLocation, b.Location, b.ID)
}

// addToBucket inserts id into the normalized bucket, keeping the bucket
// sorted and duplicate-free.
func addToBucket(sub map[string][]string, key, id string) {
	k := normalizeKey(key)
	if k == "" {
		return
	}
	bucket := sub[k]
	i, found := slices.BinarySearch(bucket, id)
	if found {
		return
	}
	sub[k] = slices.Insert(bucket, i, id)
}

// scrub removes id from every bucket of every sub-map, pruning buckets it
// empties.
func scrub(maps []map[string][]string, id string) {
	for _, sub := range maps {
		for key, bucket := range sub {
			i, found := slices.BinarySearch(bucket, id)
			if !found {
				continue
			}
			bucket = slices.Delete(bucket, i, i+1)
			if len(bucket) == 0 {
				delete(sub, key)
			} else {
				sub[key] = bucket
			}
		}
	}
}

// intersect returns the ids present in both sorted lists.
func intersect(a, b []string) []string {
	out := []string{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
