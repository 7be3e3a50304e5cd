package request

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}

// ListRequest is shared by list endpoints. Latest > 0 returns the newest N
// records and takes precedence over page/per_page.
type ListRequest struct {
	PaginatedRequest
	Latest int `json:"latest" validate:"min=0,max=1000"`
}
