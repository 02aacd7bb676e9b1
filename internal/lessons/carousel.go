package lessons

// Carousel walks the lessons one at a time. Navigation stops at both ends.
type Carousel struct {
	index int
}

// NewCarousel returns a carousel positioned on the first lesson.
func NewCarousel() *Carousel {
	return &Carousel{}
}

// Index returns the current position.
func (c *Carousel) Index() int { return c.index }

// Current returns the lesson under the cursor.
func (c *Carousel) Current() Lesson {
	return builtin[c.index]
}

// HasPrev reports whether Prev would move.
func (c *Carousel) HasPrev() bool { return c.index > 0 }

// HasNext reports whether Next would move.
func (c *Carousel) HasNext() bool { return c.index < len(builtin)-1 }

// Prev moves back one lesson and reports whether it moved.
func (c *Carousel) Prev() bool {
	if !c.HasPrev() {
		return false
	}
	c.index--
	return true
}

// Next moves forward one lesson and reports whether it moved.
func (c *Carousel) Next() bool {
	if !c.HasNext() {
		return false
	}
	c.index++
	return true
}

// Seek jumps to lesson i. Out-of-range indexes are ignored.
func (c *Carousel) Seek(i int) bool {
	if i < 0 || i >= len(builtin) {
		return false
	}
	c.index = i
	return true
}
