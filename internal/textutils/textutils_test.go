package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMerchant(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"Plain name", "Netflix", "Netflix"},
		{"Trailing date marker", "Netflix on 04-03-23", "Netflix"},
		{"Trailing reference", "AMAZON Ref No 12345", "AMAZON"},
		{"Trailing balance", "Swiggy Avl Bal Rs.500", "Swiggy"},
		{"Trailing UPI", "merchant@okaxis UPI Ref 1234", "merchant@okaxis"},
		{"Boundary punctuation", " BigBasket. ", "BigBasket"},
		{"Nothing usable", " - ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanMerchant(tt.raw))
		})
	}
}

func TestNormalizeMerchant(t *testing.T) {
	assert.Equal(t, "netflix com", NormalizeMerchant("NETFLIX.COM"))
	assert.Equal(t, "netflix com", NormalizeMerchant("Netflix  Com "))
	assert.Equal(t, "netflix com", NormalizeMerchant("netflix-com"))
	assert.Equal(t, "", NormalizeMerchant("  --  "))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("Rs.100 debited from A/c", []string{"debited", "credited"}))
	assert.True(t, ContainsAny("Rs.100 DEBITED from A/c", []string{"debited"}))
	assert.False(t, ContainsAny("hello world", []string{"debited", "credited"}))
}
