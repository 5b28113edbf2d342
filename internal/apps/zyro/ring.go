package zyro

import "encoding/json"

const ideaHistoryCap = 50

// ideaRing is a fixed-capacity ring buffer over the idea history. Pushing
// past capacity evicts the oldest entry in O(1) instead of re-slicing. It
// marshals as a plain JSON array, newest first, so the persisted document
// stays a readable list.
type ideaRing struct {
	buf  [ideaHistoryCap]Idea
	head int // index of the newest entry
	size int
}

// Push inserts an idea as the newest entry, evicting the oldest when full.
func (r *ideaRing) Push(idea Idea) {
	r.head = (r.head + ideaHistoryCap - 1) % ideaHistoryCap
	r.buf[r.head] = idea
	if r.size < ideaHistoryCap {
		r.size++
	}
}

// Len returns the number of stored ideas.
func (r *ideaRing) Len() int { return r.size }

// At returns the idea at position i, 0 = newest.
func (r *ideaRing) At(i int) *Idea {
	if i < 0 || i >= r.size {
		return nil
	}
	return &r.buf[(r.head+i)%ideaHistoryCap]
}

// Find returns the idea with the given id, or nil.
func (r *ideaRing) Find(id int64) *Idea {
	for i := 0; i < r.size; i++ {
		if idea := r.At(i); idea.ID == id {
			return idea
		}
	}
	return nil
}

// Slice copies out up to limit ideas, newest first. limit <= 0 means all.
func (r *ideaRing) Slice(limit int) []Idea {
	if limit <= 0 || limit > r.size {
		limit = r.size
	}
	out := make([]Idea, limit)
	for i := 0; i < limit; i++ {
		out[i] = *r.At(i)
	}
	return out
}

func (r *ideaRing) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Slice(0))
}

func (r *ideaRing) UnmarshalJSON(data []byte) error {
	var ideas []Idea
	if err := json.Unmarshal(data, &ideas); err != nil {
		return err
	}
	*r = ideaRing{}
	// The stored list is newest first; push oldest first to rebuild order.
	for i := len(ideas) - 1; i >= 0; i-- {
		r.Push(ideas[i])
	}
	return nil
}
