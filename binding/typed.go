package binding

import (
	"fmt"
	"reflect"

	"github.com/bindery/listbind-golang/diff"
)

// TypeMismatchError reports that the item stored at a path does not
// have the model type the caller expected. The binding layer decides
// whether this is fatal; the lookup itself never panics.
type TypeMismatchError struct {
	Path diff.ItemPath
	Want reflect.Type
	Got  reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("model at %s is %v, not %v", e.Path, e.Got, e.Want)
}

// ItemAs returns the item at the given path down-cast to the concrete
// model type M. Heterogeneous snapshots typically store items as `any`;
// this is the checked lookup cell providers and handlers use to get
// their typed model back.
func ItemAs[M any, S comparable, I any](snap Snapshot[S, I], path diff.ItemPath) (M, error) {
	var zero M
	item, ok := snap.Item(path)
	if !ok {
		return zero, fmt.Errorf("no item at %s", path)
	}
	model, ok := any(item).(M)
	if !ok {
		return zero, &TypeMismatchError{
			Path: path,
			Want: reflect.TypeFor[M](),
			Got:  reflect.TypeOf(item),
		}
	}
	return model, nil
}

// SectionAs returns the identity token of the given section down-cast
// to the concrete type M, for snapshots whose section identity is
// heterogeneous. The reported path carries the section index with
// Item set to -1.
func SectionAs[M any, S comparable, I any](snap Snapshot[S, I], section int) (M, error) {
	var zero M
	id, ok := snap.SectionID(section)
	if !ok {
		return zero, fmt.Errorf("no section at %d", section)
	}
	token, ok := any(id).(M)
	if !ok {
		return zero, &TypeMismatchError{
			Path: diff.ItemPath{Section: section, Item: -1},
			Want: reflect.TypeFor[M](),
			Got:  reflect.TypeOf(id),
		}
	}
	return token, nil
}
