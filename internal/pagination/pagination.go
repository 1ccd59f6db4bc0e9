package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (MaxPage-1)*MaxLimit inside a 32-bit int.
	MaxPage = math.MaxInt32 / MaxLimit
)

type Params struct {
	Page  int
	Limit int
}

type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type Result[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// Parse reads 1-based page and limit query values. Absent, non-numeric
// and non-positive values fall back to the defaults. Limit is capped at
// MaxLimit and page at MaxPage, so Offset never overflows.
func Parse(pageStr, limitStr string) Params {
	p := Params{
		Page:  positiveOr(pageStr, DefaultPage),
		Limit: positiveOr(limitStr, DefaultLimit),
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Params) Meta(total int64) Meta {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Meta{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}

func NewResult[T any](data []T, p Params, total int64) Result[T] {
	if data == nil {
		data = []T{}
	}
	return Result[T]{Data: data, Pagination: p.Meta(total)}
}

func positiveOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
