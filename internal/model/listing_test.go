package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cape Town", "cape town"},
		{"  CAPE TOWN  ", "cape town"},
		{"durban", "durban"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCity(tt.in))
	}
}

func TestListingExpired(t *testing.T) {
	now := time.Now()

	listing := Listing{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, listing.Expired(now))

	listing.ExpiresAt = now.Add(-time.Minute)
	assert.True(t, listing.Expired(now))

	// The boundary instant counts as expired.
	listing.ExpiresAt = now
	assert.True(t, listing.Expired(now))
}
