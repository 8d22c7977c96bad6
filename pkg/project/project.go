package project

// Project is the root of the editing graph.
type Project struct {
	Name string
	// URI is the location the project was loaded from or last saved to.
	URI string

	Sources  *SourceList
	Timeline *Timeline
}

// New returns an empty project.
func New(name string) *Project {
	return &Project{
		Name:     name,
		Sources:  NewSourceList(),
		Timeline: NewTimeline(),
	}
}

// IsEmpty reports whether p has no sources, tracks or timeline objects.
func (p *Project) IsEmpty() bool {
	return p.Sources.Len() == 0 &&
		len(p.Timeline.tracks) == 0 &&
		len(p.Timeline.objects) == 0
}

// SourceList holds a project's factories in insertion order, keyed by
// handle.
type SourceList struct {
	order []Factory
	index map[Handle]Factory
}

// NewSourceList returns an empty list.
func NewSourceList() *SourceList {
	return &SourceList{index: make(map[Handle]Factory)}
}

// Add appends f. Adding a factory that is already present does nothing.
func (l *SourceList) Add(f Factory) {
	if _, ok := l.index[f.Handle()]; ok {
		return
	}
	l.index[f.Handle()] = f
	l.order = append(l.order, f)
}

// Get returns the factory with handle h.
func (l *SourceList) Get(h Handle) (Factory, bool) {
	f, ok := l.index[h]
	return f, ok
}

// Remove deletes the factory with handle h and reports whether it existed.
func (l *SourceList) Remove(h Handle) bool {
	if _, ok := l.index[h]; !ok {
		return false
	}
	delete(l.index, h)
	for i, f := range l.order {
		if f.Handle() == h {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns the factories in insertion order.
func (l *SourceList) All() []Factory { return append([]Factory(nil), l.order...) }

// Len returns the number of factories.
func (l *SourceList) Len() int { return len(l.order) }
