package naming

import (
	"sort"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// invalidByteBase is OR'd with each byte that is not part of a valid UTF-8
// sequence. The result is a lone low surrogate, which valid UTF-8 never
// decodes to, so distinct invalid bytes stay distinct and never collide with
// real characters.
const invalidByteBase = 0xDC00

// point is a decoded code point and its canonical combining class.
type point struct {
	// value is the code point.
	value rune
	// class is the canonical combining class. Zero indicates a starter.
	class uint8
}

// Cursor yields the canonically decomposed (and optionally case-folded) code
// points of a raw name, one at a time. Its sequence is lazy, finite and not
// restartable; a fresh cursor must be initialized to scan a name again. The
// zero value is not usable until Init is called. Cursors are intended to live
// on the stack of a single comparison or hash call.
//
// Each character is fully decomposed on its own and runs of non-starters are
// put in canonical order without any length limit, so no code points are ever
// inserted into the sequence.
type Cursor struct {
	// source is the undecoded remainder of the name.
	source []byte
	// fold indicates whether or not case folding is applied.
	fold bool
	// caser performs case folding of non-ASCII segments. It is created lazily.
	caser *cases.Caser
	// decoded holds the decomposition of the most recently decoded character.
	decoded []point
	// next is the index of the next unconsumed point in decoded.
	next int
	// pending holds the ordered points of the current segment.
	pending []point
	// head is the index of the next point in pending.
	head int
	// scratch is reusable byte storage for decomposition and folding.
	scratch []byte
	// decodedStorage backs decoded for short decompositions.
	decodedStorage [4]point
	// pendingStorage backs pending for short segments.
	pendingStorage [8]point
	// malformed records whether or not invalid bytes were encountered.
	malformed bool
}

// NewCursor creates a new cursor over the specified name.
func NewCursor(name RawName, fold bool) *Cursor {
	cursor := &Cursor{}
	cursor.Init(name, fold)
	return cursor
}

// Init resets the cursor to the beginning of the specified name.
func (c *Cursor) Init(name RawName, fold bool) {
	c.source = name
	c.fold = fold
	c.decoded = c.decodedStorage[:0]
	c.next = 0
	c.pending = c.pendingStorage[:0]
	c.head = 0
	c.malformed = false
}

// Next returns the next normalized code point. The second return value is
// false once the name is exhausted.
func (c *Cursor) Next() (rune, bool) {
	if c.head == len(c.pending) && !c.segment() {
		return 0, false
	}
	p := c.pending[c.head]
	c.head++
	return p.value, true
}

// Malformed indicates whether or not any invalid UTF-8 was encountered so far.
func (c *Cursor) Malformed() bool {
	return c.malformed
}

// combiningClass returns the canonical combining class of a code point.
func combiningClass(r rune) uint8 {
	if r < utf8.RuneSelf || r&^0xff == invalidByteBase {
		return 0
	}
	var buffer [utf8.UTFMax]byte
	size := utf8.EncodeRune(buffer[:], r)
	return norm.NFD.Properties(buffer[:size]).CCC()
}

// order stably sorts each run of non-starters by combining class.
func order(points []point) {
	for start := 0; start < len(points); {
		if points[start].class == 0 {
			start++
			continue
		}
		end := start + 1
		for end < len(points) && points[end].class != 0 {
			end++
		}
		if end-start > 1 {
			run := points[start:end]
			sort.SliceStable(run, func(i, j int) bool {
				return run[i].class < run[j].class
			})
		}
		start = end
	}
}

// peek returns the next decomposed point without consuming it, decoding a
// further character from the source if necessary.
func (c *Cursor) peek() (point, bool) {
	for c.next == len(c.decoded) {
		if len(c.source) == 0 {
			return point{}, false
		}
		c.decode()
	}
	return c.decoded[c.next], true
}

// decode replaces the decoded buffer with the full canonical decomposition of
// the next character in the source.
func (c *Cursor) decode() {
	c.decoded = c.decoded[:0]
	c.next = 0

	// Handle ASCII directly. Folding is deferred to the segment.
	if b := c.source[0]; b < utf8.RuneSelf {
		c.decoded = append(c.decoded, point{value: rune(b)})
		c.source = c.source[1:]
		return
	}

	// Invalid bytes are passed through one at a time.
	r, size := utf8.DecodeRune(c.source)
	if r == utf8.RuneError && size == 1 {
		c.malformed = true
		c.decoded = append(c.decoded, point{value: invalidByteBase | rune(c.source[0])})
		c.source = c.source[1:]
		return
	}

	// Decompose the character in isolation.
	c.scratch = norm.NFD.Append(c.scratch[:0], c.source[:size]...)
	c.source = c.source[size:]
	for decomposition := c.scratch; len(decomposition) > 0; {
		r, size := utf8.DecodeRune(decomposition)
		c.decoded = append(c.decoded, point{value: r, class: combiningClass(r)})
		decomposition = decomposition[size:]
	}
}

// segment loads the next segment (a starter followed by its non-starters) into
// the pending queue in canonical order. It returns false if the source is
// exhausted.
func (c *Cursor) segment() bool {
	c.pending = c.pending[:0]
	c.head = 0

	// Collect points up to the next starter.
	for {
		p, ok := c.peek()
		if !ok || (p.class == 0 && len(c.pending) > 0) {
			break
		}
		c.pending = append(c.pending, p)
		c.next++
	}
	if len(c.pending) == 0 {
		return false
	}
	order(c.pending)

	// Fold if necessary.
	if c.fold {
		c.foldSegment()
	}
	return true
}

// foldSegment case folds the pending segment and restores canonical
// decomposition and ordering, which folding may disturb.
func (c *Cursor) foldSegment() {
	// ASCII-only segments only need A-Z mapped.
	ascii := true
	for i, p := range c.pending {
		if p.value >= utf8.RuneSelf {
			ascii = false
			break
		} else if 'A' <= p.value && p.value <= 'Z' {
			c.pending[i].value += 'a' - 'A'
		}
	}
	if ascii {
		return
	}

	// Fold the valid code points of the segment. Invalid bytes are starters, so
	// they can only lead a segment.
	var invalid []point
	points := c.pending
	if points[0].value&^0xff == invalidByteBase {
		invalid, points = points[:1], points[1:]
		if len(points) == 0 {
			return
		}
	}
	c.scratch = c.scratch[:0]
	for _, p := range points {
		c.scratch = utf8.AppendRune(c.scratch, p.value)
	}
	if c.caser == nil {
		caser := cases.Fold()
		c.caser = &caser
	}
	folded := c.caser.Bytes(c.scratch)

	// Decompose the folded characters and reorder.
	c.pending = append(c.pendingStorage[:0], invalid...)
	for len(folded) > 0 {
		_, size := utf8.DecodeRune(folded)
		c.scratch = norm.NFD.Append(c.scratch[:0], folded[:size]...)
		folded = folded[size:]
		for decomposition := c.scratch; len(decomposition) > 0; {
			r, n := utf8.DecodeRune(decomposition)
			c.pending = append(c.pending, point{value: r, class: combiningClass(r)})
			decomposition = decomposition[n:]
		}
	}
	order(c.pending)
}
