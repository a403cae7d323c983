package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical round-trip", "01.01.2025", "01.01.2025"},
		{"iso", "2025-01-04", "04.01.2025"},
		{"iso slashes", "2025/01/04", "04.01.2025"},
		{"dd/mm/yyyy", "04/01/2025", "04.01.2025"},
		{"ambiguous prefers dd/mm", "05/01/2025", "05.01.2025"},
		{"mm/dd fallback", "01/25/2025", "25.01.2025"},
		{"unparseable passes through", "next tuesday", "next tuesday"},
		{"empty passes through", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceDate(tt.input))
		})
	}
}

func TestFlexDateUnmarshal(t *testing.T) {
	var d FlexDate
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-10"`), &d))
	assert.Equal(t, "10.03.2025", d.String())

	err := json.Unmarshal([]byte(`42`), &d)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestTimeValueUnmarshal(t *testing.T) {
	t.Run("epoch seconds", func(t *testing.T) {
		var v TimeValue
		require.NoError(t, json.Unmarshal([]byte(`1694949930`), &v))
		epoch, ok := v.Epoch()
		require.True(t, ok)
		assert.Equal(t, int64(1694949930), epoch)
	})

	t.Run("negative epoch rejected", func(t *testing.T) {
		var v TimeValue
		err := json.Unmarshal([]byte(`-5`), &v)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "time", verr.Field)
	})

	t.Run("digit string coerced to epoch", func(t *testing.T) {
		var v TimeValue
		require.NoError(t, json.Unmarshal([]byte(`"1694949930"`), &v))
		epoch, ok := v.Epoch()
		require.True(t, ok)
		assert.Equal(t, int64(1694949930), epoch)

		out, err := json.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, "1694949930", string(out))
	})

	t.Run("clock time kept as string", func(t *testing.T) {
		var v TimeValue
		require.NoError(t, json.Unmarshal([]byte(`"09:30"`), &v))
		assert.True(t, v.IsClockTime())
		assert.Equal(t, "09:30", v.String())
	})

	t.Run("lenient fallback", func(t *testing.T) {
		var v TimeValue
		require.NoError(t, json.Unmarshal([]byte(`"after lunch"`), &v))
		assert.False(t, v.IsClockTime())
		assert.Equal(t, "after lunch", v.String())
	})
}

func TestFlexAmount(t *testing.T) {
	var a FlexAmount
	require.NoError(t, json.Unmarshal([]byte(`"1500.50"`), &a))
	f, ok := a.Float()
	require.True(t, ok)
	assert.InDelta(t, 1500.50, f, 1e-9)

	require.NoError(t, json.Unmarshal([]byte(`"around 2k"`), &a))
	_, ok = a.Float()
	assert.False(t, ok)
	assert.Equal(t, "around 2k", a.String())
}

func TestFlexID(t *testing.T) {
	var id FlexID
	require.NoError(t, json.Unmarshal([]byte(`12345`), &id))
	assert.Equal(t, "12345", id.String())

	require.NoError(t, json.Unmarshal([]byte(`"ChIJT"`), &id))
	assert.Equal(t, "ChIJT", id.String())

	out, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"ChIJT"`, string(out))
}
