package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Giftmbatha/food-rescue/internal/model"
)

func TestSearchStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want model.ListingStatus
	}{
		{"empty defaults to OPEN", "", model.ListingStatusOpen},
		{"all disables the filter", "all", ""},
		{"explicit status passes through", "CLAIMED", model.ListingStatusClaimed},
		{"terminal status passes through", "CANCELLED", model.ListingStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, searchStatus(tt.raw))
		})
	}
}
