package inventory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestedOrderQuantity(t *testing.T) {
	cases := []struct {
		quantity, min, defaultMin, want int64
	}{
		{5, 0, 20, 35},   // sin mínimo propio: 2*20 - 5
		{5, 10, 20, 15},  // mínimo propio manda: 2*10 - 5
		{40, 10, 20, 0},  // stock sobre el doble del mínimo: nada que pedir
		{20, 10, 20, 0},  // exactamente el doble
		{0, 10, 20, 20},  // agotado
		{19, 10, 20, 1},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("q=%d min=%d", tc.quantity, tc.min), func(t *testing.T) {
			assert.Equal(t, tc.want, SuggestedOrderQuantity(tc.quantity, tc.min, tc.defaultMin))
		})
	}
}
