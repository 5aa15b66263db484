package widget

// Favorites is the per-session set of saved listing ids, in the order they
// were added. It is never persisted.
type Favorites struct {
	ids []string
}

// Toggle adds or removes id and reports whether it is now a favorite.
func (f *Favorites) Toggle(id string) bool {
	for i, v := range f.ids {
		if v == id {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			return false
		}
	}
	f.ids = append(f.ids, id)
	return true
}

func (f *Favorites) Has(id string) bool {
	for _, v := range f.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (f *Favorites) IDs() []string {
	out := make([]string, len(f.ids))
	copy(out, f.ids)
	return out
}
