package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pantry/internal/platform/apperr"
)

func TestSelectableAs(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		expected string
		wantKind apperr.Kind
	}{
		{"active drink as drink", Item{Type: TypeDrink, IsActive: true}, TypeDrink, ""},
		{"active snack as snack", Item{Type: TypeSnack, IsActive: true}, TypeSnack, ""},
		{"snack id on a drink field", Item{Type: TypeSnack, IsActive: true}, TypeDrink, apperr.KindValidation},
		{"drink id on a snack field", Item{Type: TypeDrink, IsActive: true}, TypeSnack, apperr.KindValidation},
		{"inactive item hidden", Item{Type: TypeDrink, IsActive: false}, TypeDrink, apperr.KindNotFound},
		{"inactive beats wrong type", Item{Type: TypeSnack, IsActive: false}, TypeDrink, apperr.KindNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := selectableAs(tc.item, tc.expected)
			if tc.wantKind == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, tc.wantKind, apperr.KindOf(err))
		})
	}
}
