package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemSameAs(t *testing.T) {
	tests := []struct {
		name string
		a, b Item
		want bool
	}{
		{"same key", Item{"id": 2, "name": "banana"}, Item{"id": 2, "name": "renamed"}, true},
		{"number and string key", Item{"id": 2}, Item{"id": "2"}, true},
		{"different key", Item{"id": 1}, Item{"id": 2}, false},
		{"missing key", Item{"name": "x"}, Item{"name": "x"}, false},
		{"nil other", Item{"id": 1}, nil, false},
		{"both nil", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.SameAs(tt.b, "id"))
		})
	}
}
