package dto

// Sort mirrors the sort block of the page envelope.
type Sort struct {
	Sorted   bool `json:"sorted"`
	Unsorted bool `json:"unsorted"`
	Empty    bool `json:"empty"`
}

// Pageable mirrors the pageable block of the page envelope.
type Pageable struct {
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	Offset     int64 `json:"offset"`
	Sort       Sort  `json:"sort"`
	Paged      bool  `json:"paged"`
	Unpaged    bool  `json:"unpaged"`
}

// Page is the paginated response envelope for statements and transaction
// listings: content plus pageable, totalElements, totalPages, size, number,
// first, last and empty.
type Page[T any] struct {
	Content       []T      `json:"content"`
	Pageable      Pageable `json:"pageable"`
	TotalElements int64    `json:"totalElements"`
	TotalPages    int      `json:"totalPages"`
	Size          int      `json:"size"`
	Number        int      `json:"number"`
	First         bool     `json:"first"`
	Last          bool     `json:"last"`
	Empty         bool     `json:"empty"`
}

// NewPage assembles a Page from one page of content and the total element
// count. Page numbers are zero-based; totalPages is ceil(total/size).
func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	last := page >= totalPages-1
	if total == 0 {
		last = true
	}
	return Page[T]{
		Content: content,
		Pageable: Pageable{
			PageNumber: page,
			PageSize:   size,
			Offset:     int64(page) * int64(size),
			Sort:       Sort{Sorted: true},
			Paged:      true,
		},
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
		First:         page == 0,
		Last:          last,
		Empty:         len(content) == 0,
	}
}
