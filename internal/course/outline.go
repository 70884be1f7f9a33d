package course

import "sort"

// LessonRef pairs a lesson with its index in the module's storage
// array. Positions are persisted against storage indices so they stay
// stable across re-sorts, while unlock and navigation walk the
// order-sorted view.
type LessonRef struct {
	StorageIndex int
	Lesson       *Lesson
}

// ActiveSorted returns the module's active lessons sorted ascending by
// Order. The sort is stable, so lessons sharing an Order keep their
// storage-array relative positions.
func (m *Module) ActiveSorted() []LessonRef {
	refs := make([]LessonRef, 0, len(m.Lessons))
	for i := range m.Lessons {
		if m.Lessons[i].Active {
			refs = append(refs, LessonRef{StorageIndex: i, Lesson: &m.Lessons[i]})
		}
	}
	sort.SliceStable(refs, func(a, b int) bool {
		return refs[a].Lesson.Order < refs[b].Lesson.Order
	})
	return refs
}

// RankOf translates a storage index into the lesson's rank in the
// ActiveSorted sequence. The boolean is false when the storage index
// is out of range or points at an inactive lesson.
func (m *Module) RankOf(storageIndex int) (int, bool) {
	for rank, ref := range m.ActiveSorted() {
		if ref.StorageIndex == storageIndex {
			return rank, true
		}
	}
	return 0, false
}

// ActiveLessonCount reports how many lessons in the module take part
// in unlock and progress computation.
func (m *Module) ActiveLessonCount() int {
	n := 0
	for i := range m.Lessons {
		if m.Lessons[i].Active {
			n++
		}
	}
	return n
}

// sortModules orders modules ascending by Order, stable on payload
// position. Called once at decode time; module indices used elsewhere
// refer to this display order.
func sortModules(mods []Module) {
	sort.SliceStable(mods, func(a, b int) bool {
		return mods[a].Order < mods[b].Order
	})
}
