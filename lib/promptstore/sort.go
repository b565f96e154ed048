package promptstore

// SortMode is one of four fixed (key, direction) pairs. The raw query value
// from the sort control never reaches SQL: it is parsed into one of these and
// anything unrecognized falls back to the default.
type SortMode string

const (
	SortCreatedDesc SortMode = "created-desc"
	SortCreatedAsc  SortMode = "created-asc"
	SortTitleAsc    SortMode = "title-asc"
	SortTitleDesc   SortMode = "title-desc"
)

func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortCreatedDesc, SortCreatedAsc, SortTitleAsc, SortTitleDesc:
		return SortMode(s)
	}
	return SortCreatedDesc
}

// id is the tiebreaker so equal keys still render in a stable order.
func (s SortMode) orderClause() string {
	switch s {
	case SortCreatedAsc:
		return "created_at ASC, id ASC"
	case SortTitleAsc:
		return "title ASC, id ASC"
	case SortTitleDesc:
		return "title DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}
