package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestNormalize(t *testing.T) {
	cases := []struct {
		in   PageRequest
		want PageRequest
	}{
		{PageRequest{}, PageRequest{Page: 1, Limit: DefaultPageLimit}},
		{PageRequest{Page: 3, Limit: 20}, PageRequest{Page: 3, Limit: 20}},
		{PageRequest{Page: -2, Limit: -5}, PageRequest{Page: 1, Limit: 1}},
		{PageRequest{Page: 1, Limit: 500}, PageRequest{Page: 1, Limit: MaxPageLimit}},
		{PageRequest{Page: math.MaxInt, Limit: 100}, PageRequest{Page: MaxPage, Limit: 100}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.in.Normalize())
	}
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 3, Limit: 20}.Offset())

	huge := PageRequest{Page: math.MaxInt, Limit: 500}.Normalize()
	assert.GreaterOrEqual(t, huge.Offset(), 0)
}

func TestNewPage(t *testing.T) {
	page := NewPage([]string{"a", "b"}, PageRequest{Page: 2, Limit: 2}, 5)
	assert.Equal(t, Pagination{Page: 2, Limit: 2, Total: 5, Pages: 3}, page.Pagination)

	empty := NewPage[string](nil, PageRequest{Page: 1, Limit: 10}, 0)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.Pagination.Pages)
}

func TestValidationResponse(t *testing.T) {
	res := ValidationResponse("validation failed", map[string]string{"title": "is required"})

	assert.True(t, res.Error)
	assert.Equal(t, 400, res.Status)
	assert.Equal(t, FieldErrors{Fields: map[string]string{"title": "is required"}}, res.Data)
}
