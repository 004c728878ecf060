package viewstate

// Pager tracks a zero-based page of a paginated collection
type Pager struct {
	Page       int
	Size       int
	TotalPages int
}

func NewPager(size int) *Pager {
	if size <= 0 {
		size = 20
	}
	return &Pager{Size: size}
}

// Clamp returns page bounded to [0, TotalPages) once TotalPages is known
func (p *Pager) Clamp(page int) int {
	if p.TotalPages > 0 && page >= p.TotalPages {
		page = p.TotalPages - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}

// Go moves to page after clamping and returns the page to request
func (p *Pager) Go(page int) int {
	p.Page = p.Clamp(page)
	return p.Page
}

func (p *Pager) HasPrev() bool {
	return p.Page > 0
}

func (p *Pager) HasNext() bool {
	return p.Page+1 < p.TotalPages
}

// Prev returns the previous page; at page 0 it stays put
func (p *Pager) Prev() int {
	return p.Go(p.Page - 1)
}

// Next returns the next page; at the last page it stays put
func (p *Pager) Next() int {
	if !p.HasNext() {
		return p.Page
	}
	return p.Go(p.Page + 1)
}

// Update records the totals reported by a response and re-clamps the page
func (p *Pager) Update(totalPages int) {
	if totalPages < 0 {
		totalPages = 0
	}
	p.TotalPages = totalPages
	p.Page = p.Clamp(p.Page)
}
