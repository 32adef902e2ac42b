package matches

import "errors"

const (
	// MinPageSize is the smallest page a Store will allocate.
	MinPageSize = 4096
	// MaxPageSize is the largest page a Store will allocate.
	MaxPageSize = 0x10000
)

// ErrStoreExhausted is returned when a Store may not allocate another page.
var ErrStoreExhausted = errors.New("match store exhausted")

type page struct {
	buf   []byte
	front int // grows up from 0
	back  int // grows down from len(buf)
}

func newPage(size int) *page {
	return &page{buf: make([]byte, size), back: size}
}

func (p *page) free() int {
	return p.back - p.front
}

// Store is a paged bump allocator for the strings of one completion cycle.
// Each page is filled from both ends: the front holds short-lived buffers and
// the back holds long-lived strings. When the cursors would cross a fresh page
// is started; pages never grow in place, so every slice handed out stays valid
// until Reset.
//
// A Store is not safe for concurrent use.
type Store struct {
	size     int
	maxPages int
	pages    []*page // allocation order, newest last
	cur      *page   // newest page of the standard size
	used     int
}

// NewStore creates a Store whose pages hold size bytes, clamped to
// [MinPageSize, MaxPageSize]. maxPages bounds how many pages may be live at
// once; zero or less means no bound.
func NewStore(size, maxPages int) *Store {
	s := &Store{
		size:     min(max(size, MinPageSize), MaxPageSize),
		maxPages: maxPages,
	}
	s.cur = newPage(s.size)
	s.pages = append(s.pages, s.cur)
	return s
}

// StoreFront copies text into the front of the current page.
func (s *Store) StoreFront(text string) ([]byte, error) {
	n := len(text)
	if n > s.size {
		return s.storeOversized(text)
	}

	if n > s.cur.free() {
		if err := s.grow(); err != nil {
			return nil, err
		}
	}

	p := s.cur
	b := p.buf[p.front : p.front+n : p.front+n]
	copy(b, text)
	p.front += n
	s.used += n
	return b, nil
}

// StoreBack copies text into the back of the current page.
func (s *Store) StoreBack(text string) ([]byte, error) {
	n := len(text)
	if n > s.size {
		return s.storeOversized(text)
	}

	if n > s.cur.free() {
		if err := s.grow(); err != nil {
			return nil, err
		}
	}

	p := s.cur
	p.back -= n
	b := p.buf[p.back : p.back+n : p.back+n]
	copy(b, text)
	s.used += n
	return b, nil
}

// storeOversized gives text that can never fit a page a page of its own. The
// unused tail of the current page is left as is.
func (s *Store) storeOversized(text string) ([]byte, error) {
	if s.atLimit() {
		return nil, ErrStoreExhausted
	}

	p := newPage(len(text))
	copy(p.buf, text)
	p.front = len(text)
	s.pages = append(s.pages, p)
	s.used += len(text)
	return p.buf[:len(text):len(text)], nil
}

func (s *Store) grow() error {
	if s.atLimit() {
		return ErrStoreExhausted
	}
	s.cur = newPage(s.size)
	s.pages = append(s.pages, s.cur)
	return nil
}

func (s *Store) atLimit() bool {
	return s.maxPages > 0 && len(s.pages) >= s.maxPages
}

// Reset drops every page except the newest standard page, which is rewound
// and kept for the next cycle. Slices returned before Reset must no longer be
// used.
func (s *Store) Reset() {
	clear(s.pages)
	s.pages = append(s.pages[:0], s.cur)
	s.cur.front = 0
	s.cur.back = len(s.cur.buf)
	s.used = 0
}

// PageSize returns the capacity of a standard page.
func (s *Store) PageSize() int {
	return s.size
}

// PageCount returns the number of live pages.
func (s *Store) PageCount() int {
	return len(s.pages)
}

// Used returns how many bytes were handed out since the last Reset.
func (s *Store) Used() int {
	return s.used
}
