package preference

import (
	"strconv"
	"strings"
)

// genreRange maps a contiguous block of numeric item ids to a genre. The
// catalog assigns ids per genre block, so the genre of a logged item can be
// recovered from the id alone without a catalog lookup.
type genreRange struct {
	lo, hi int
	genre  string
}

var genreRanges = []genreRange{
	{1, 10, "action"},
	{11, 18, "romance"},
	{19, 26, "comedy"},
	{27, 34, "sci-fi"},
	{35, 37, "doc"},
	{38, 40, "thriller"},
	{41, 45, "fantasy"},
	{46, 50, "horror"},
	{51, 55, "mystery"},
	{56, 60, "drama"},
	{61, 65, "adventure"},
	{66, 70, "animation"},
	{71, 75, "musical"},
	{76, 80, "crime"},
}

// GenreFromItemID infers the genre from an item id such as "i_42". Ids
// without a numeric suffix, or outside every range, map to "unknown".
func GenreFromItemID(itemID string) string {
	n, ok := numericSuffix(itemID)
	if !ok {
		return "unknown"
	}
	for _, r := range genreRanges {
		if n >= r.lo && n <= r.hi {
			return r.genre
		}
	}
	return "unknown"
}

// numericSuffix extracts the trailing number of ids like "u_7" or "i_42".
// A bare numeric id is accepted as-is.
func numericSuffix(id string) (int, bool) {
	s := id
	if i := strings.LastIndex(id, "_"); i >= 0 {
		s = id[i+1:]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
