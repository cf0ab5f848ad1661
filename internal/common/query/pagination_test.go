package query

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateDefaults(t *testing.T) {
	p := Paginate("", "", 25)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 10, p.RecordsPerPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
	require.NotNil(t, p.NextPage)
	assert.Equal(t, 2, *p.NextPage)
	assert.Nil(t, p.PrevPage)
}

func TestPaginateNonNumericFallsBack(t *testing.T) {
	p := Paginate("abc", "-3", 5)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 10, p.RecordsPerPage)
	assert.Equal(t, 1, p.TotalPages)
}

func TestPaginateMiddlePage(t *testing.T) {
	p := Paginate("2", "10", 35)
	assert.Equal(t, 4, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
	assert.Equal(t, 3, *p.NextPage)
	assert.Equal(t, 1, *p.PrevPage)
	assert.Equal(t, 10, p.Offset())
}

func TestPaginateLastPage(t *testing.T) {
	p := Paginate("4", "10", 35)
	assert.False(t, p.HasNextPage)
	assert.Nil(t, p.NextPage)
	assert.True(t, p.HasPrevPage)
}

func TestPaginateEmptyResult(t *testing.T) {
	p := Paginate("1", "10", 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}

func TestPaginateLimitCap(t *testing.T) {
	p := Paginate("1", "500", 1000)
	assert.Equal(t, 100, p.RecordsPerPage)
	assert.Equal(t, 10, p.TotalPages)
}

// hasNextPage must hold exactly when page*limit < totalRecords.
func TestPaginateNextPageProperty(t *testing.T) {
	for _, tc := range []struct {
		page, limit, total int
	}{
		{1, 10, 10}, {1, 10, 11}, {2, 10, 20}, {2, 10, 21}, {3, 7, 22}, {5, 4, 20},
	} {
		p := Paginate(strconv.Itoa(tc.page), strconv.Itoa(tc.limit), tc.total)
		assert.Equal(t, tc.page*tc.limit < tc.total, p.HasNextPage,
			"page=%d limit=%d total=%d", tc.page, tc.limit, tc.total)
		assert.Equal(t, tc.page > 1, p.HasPrevPage)
	}
}
