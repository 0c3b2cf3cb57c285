// Package collection provides a thread-safe, name-ordered collection of named,
// typed members with live filtered views.
//
// A Set is a typed window onto a shared backing store. Every view derived from
// a Set (Matching, WithType) reads and writes that same store and re-evaluates
// its predicate on each access, so members added anywhere become visible to
// every view whose predicate accepts them.
//
// Capabilities (composed into Collection):
//
//	Reader    – Contains, ContainsAll, Size, IsEmpty, All, Slice
//	Lookup    – GetByName, GetAt, FindByName, Names, AsMap, Namer
//	Mutator   – Add, AddAll, Remove, RemoveAll, RetainAll, Clear
//	Notifier  – WhenObjectAdded, WhenObjectRemoved, ConfigureEach
//	RuleSet   – AddRule, AddRuleFunc, Rules
//	Viewer    – View (hook used by WithType for typed narrowing)
//
// Ordering:
//
//	Members are unique by name. All(), Slice(), Names() and AsMap() iteration
//	through Names() follow lexicographic name order.
//
// Rules:
//
//	FindByName and GetByName fall back to rules when a name is missing. Each
//	registered rule is applied once per lookup, in registration order, until
//	the name appears. A rule that re-enters lookup for the same name does not
//	trigger a nested application.
//
// Errors:
//
//	ErrEmptyName      – member reports an empty name.
//	ErrUnknownMember  – GetByName/GetAt found nothing, even after rules ran.
//	ErrRejected       – Add on a view whose predicate refuses the member.
//
// Concurrency:
//
//	One sync.RWMutex per backing store. User callbacks (predicates, rules,
//	listeners) always run outside that lock, so they may call back into any
//	view of the same store.
package collection
