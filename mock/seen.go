package mock

import "github.com/minjae-dev/campcrawl"

var _ campcrawl.SeenFilter = (*SeenFilter)(nil)

// SeenFilter is a mock implementation of campcrawl.SeenFilter backed by an
// exact map.
type SeenFilter struct {
	AddFn  func(csq string)
	SeenFn func(csq string) bool

	ids map[string]bool
}

func (f *SeenFilter) Add(csq string) {
	if f.AddFn != nil {
		f.AddFn(csq)
		return
	}
	if f.ids == nil {
		f.ids = make(map[string]bool)
	}
	f.ids[csq] = true
}

func (f *SeenFilter) Seen(csq string) bool {
	if f.SeenFn != nil {
		return f.SeenFn(csq)
	}
	return f.ids[csq]
}
