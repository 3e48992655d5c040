package types

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

func ParseSortDirection(s string) SortDirection {
	if s == string(Descending) {
		return Descending
	}
	return Ascending
}
