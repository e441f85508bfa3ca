package lint

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Registry indexes rules by ID, by name and by alias.
// Rule IDs follow the pydocstyle/ruff code scheme: an upper-case prefix
// followed by a number (D400, UP025, DOC100).
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Rule
	byName  map[string]Rule
	aliases map[string]string // alias -> canonical ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Rule),
		byName:  make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byID[rule.ID()]; ok {
		delete(r.byName, old.Name())
	}
	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
}

// RegisterAlias maps an alternative name to a canonical rule ID, e.g.
// pydocstyle's "ends-in-period" for D400. The target need not be
// registered yet.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// Get retrieves a rule by exact ID or name.
func (r *Registry) Get(key string) (Rule, bool) {
	if rule, ok := r.GetByID(key); ok {
		return rule, true
	}
	return r.GetByName(key)
}

// GetByID retrieves a rule by its ID only.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// GetByName retrieves a rule by its name only.
func (r *Registry) GetByName(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byName[name]
	return rule, ok
}

// Resolve returns the canonical ID and rule for key, which may be an ID in
// any case, a rule name or an alias.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.byID[strings.ToUpper(key)]
	if !ok {
		rule, ok = r.byName[key]
	}
	if !ok {
		if target, isAlias := r.aliases[key]; isAlias {
			rule, ok = r.byID[target]
		}
	}
	if !ok {
		return "", nil, false
	}
	return rule.ID(), rule, true
}

// Aliases returns the aliases registered for ruleID, sorted.
func (r *Registry) Aliases(ruleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []string
	for alias, target := range r.aliases {
		if target == ruleID {
			result = append(result, alias)
		}
	}
	slices.Sort(result)
	return result
}

// Rules returns all registered rules in rule ID order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.SortedFunc(maps.Values(r.byID), func(a, b Rule) int {
		return CompareRuleIDs(a.ID(), b.ID())
	})
}

// IDs returns all registered rule IDs in rule ID order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.SortedFunc(maps.Keys(r.byID), CompareRuleIDs)
}

// CompareRuleIDs orders rule IDs by prefix, then numerically, so that
// D207 sorts before D1000.
func CompareRuleIDs(a, b string) int {
	prefixA, numA := splitRuleID(a)
	prefixB, numB := splitRuleID(b)
	return cmp.Or(
		cmp.Compare(prefixA, prefixB),
		cmp.Compare(numA, numB),
		cmp.Compare(a, b),
	)
}

func splitRuleID(id string) (string, int) {
	i := strings.IndexFunc(id, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return id, -1
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return id, -1
	}
	return id[:i], n
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
