package views

import (
	"fmt"
	"net/url"
)

// SortOption pairs a sort mode value with its label in the sort control.
type SortOption struct {
	Value string
	Label string
}

// SortOptions is the full set of orderings the listing offers, in display
// order. The values match the store's sort mode enumeration.
var SortOptions = []SortOption{
	{Value: "created-desc", Label: "Newest first"},
	{Value: "created-asc", Label: "Oldest first"},
	{Value: "title-asc", Label: "Title A to Z"},
	{Value: "title-desc", Label: "Title Z to A"},
}

func listQuery(filter, sort string) url.Values {
	params := url.Values{}
	if filter != "" {
		params.Set("q", filter)
	}
	if sort != "" {
		params.Set("sort", sort)
	}
	return params
}

func editURL(id uint, filter, sort string) string {
	params := listQuery(filter, sort)
	params.Set("edit", fmt.Sprint(id))
	return "/?" + params.Encode()
}

func cancelURL(filter, sort string) string {
	params := listQuery(filter, sort)
	if len(params) == 0 {
		return "/"
	}
	return "/?" + params.Encode()
}

func favoriteURL(id uint) string {
	return fmt.Sprintf("/prompts/%d/favorite", id)
}

func deleteURL(id uint) string {
	return fmt.Sprintf("/prompts/%d/delete", id)
}
