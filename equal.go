package dart

import "reflect"

// Equal reports whether the root nodes of a and b are deeply equal
// (reflect.DeepEqual): the same tree shape, chosen features and leaf
// predictions, and also the same counts, sample ids, Meta statistics and
// persisted draws at every node. It is factored out once instead of
// re-implemented by every test that needs it.
func Equal(a, b *Tree) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a.Root, b.Root)
}
