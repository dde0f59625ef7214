package naming

// ResourceFilter selects version files or publish folders by resource.
// "Any resource" and "the default nameless resource" are distinct filters:
// the zero value matches only files whose resource field is empty.
type ResourceFilter struct {
	value string
	any   bool
}

// AnyResource matches every resource.
var AnyResource = ResourceFilter{any: true}

// Resource matches exactly the given resource name; Resource("") matches
// the default nameless resource only.
func Resource(name string) ResourceFilter {
	return ResourceFilter{value: name}
}

// Matches reports whether the filter accepts the given resource value.
func (f ResourceFilter) Matches(resource string) bool {
	return f.any || f.value == resource
}

// Any reports whether the filter matches every resource.
func (f ResourceFilter) Any() bool { return f.any }

// Value returns the exact resource the filter selects; meaningless when
// Any is true.
func (f ResourceFilter) Value() string { return f.value }
