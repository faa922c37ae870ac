package ingredient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  Unit
	}{
		{"g", MassOf(Grams)},
		{"grams", MassOf(Grams)},
		{"kilogram", MassOf(Kilograms)},
		{"mg", MassOf(Milligrams)},
		{"pound", MassOf(Pounds)},
		{"oz", MassOf(Ounces)},
		{"ml", VolumeOf(Millilitres)},
		{"litres", VolumeOf(Litres)},
		// Volume wins over spoon for spoon measures.
		{"tsp", VolumeOf(Teaspoons)},
		{"tablespoons", VolumeOf(Tablespoons)},
		{"cups", VolumeOf(Cups)},
		{"pint", VolumeOf(Pints)},
		{"quarts", VolumeOf(Quarts)},
		{"gallon", VolumeOf(Gallons)},
		{"pinch of", OtherOf("pinch of")},
		{"G", OtherOf("G")},
		{"Cup", OtherOf("Cup")},
	}

	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			t.Parallel()
			got, err := ParseUnit(tc.token)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFamilyParsers(t *testing.T) {
	t.Parallel()

	_, err := ParseMassUnit("cup")
	var unitErr *UnitError
	require.ErrorAs(t, err, &unitErr)
	assert.Equal(t, "cup", unitErr.Token)

	_, err = ParseVolumeUnit("kg")
	assert.Error(t, err)

	s, err := ParseSpoonUnit("teaspoons")
	require.NoError(t, err)
	assert.Equal(t, SpoonTeaspoons, s)

	_, err = ParseSpoonUnit("cup")
	assert.Error(t, err)
}

func TestUnitFactorsAndCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		unit      Unit
		factor    float64
		canonical Unit
	}{
		{MassOf(Milligrams), 0.001, MassOf(Grams)},
		{MassOf(Grams), 1, MassOf(Grams)},
		{MassOf(Kilograms), 1000, MassOf(Grams)},
		{MassOf(Pounds), 453.59237, MassOf(Grams)},
		{MassOf(Ounces), 28.349523125, MassOf(Grams)},
		{VolumeOf(Millilitres), 0.001, VolumeOf(Litres)},
		{VolumeOf(Litres), 1, VolumeOf(Litres)},
		{VolumeOf(Teaspoons), 0.005, VolumeOf(Litres)},
		{VolumeOf(Tablespoons), 0.015, VolumeOf(Litres)},
		{VolumeOf(Cups), 0.284, VolumeOf(Litres)},
		{VolumeOf(Pints), 0.568, VolumeOf(Litres)},
		{VolumeOf(Quarts), 0.946353, VolumeOf(Litres)},
		{VolumeOf(Gallons), 3.785412, VolumeOf(Litres)},
		{SpoonOf(SpoonTeaspoons), 0.005, VolumeOf(Litres)},
		{SpoonOf(SpoonTablespoons), 0.015, VolumeOf(Litres)},
		{OtherOf("handful"), 1, OtherOf("handful")},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.factor, tc.unit.Factor(), tc.unit.String())
		assert.Equal(t, tc.canonical, tc.unit.Canonical(), tc.unit.String())
	}
}

func TestPrefixLadder(t *testing.T) {
	t.Parallel()

	smaller, ok := MassOf(Kilograms).SmallerPrefix()
	require.True(t, ok)
	assert.Equal(t, MassOf(Grams), smaller)

	smaller, ok = MassOf(Grams).SmallerPrefix()
	require.True(t, ok)
	assert.Equal(t, MassOf(Milligrams), smaller)

	larger, ok := VolumeOf(Millilitres).LargerPrefix()
	require.True(t, ok)
	assert.Equal(t, VolumeOf(Litres), larger)

	for _, u := range []Unit{MassOf(Milligrams), VolumeOf(Millilitres), MassOf(Pounds), VolumeOf(Cups), SpoonOf(SpoonTeaspoons), OtherOf("pinch")} {
		_, ok := u.SmallerPrefix()
		assert.False(t, ok, u.String())
	}
	for _, u := range []Unit{MassOf(Kilograms), VolumeOf(Litres), MassOf(Pounds), VolumeOf(Gallons), SpoonOf(SpoonTablespoons), OtherOf("pinch")} {
		_, ok := u.LargerPrefix()
		assert.False(t, ok, u.String())
	}
}

func TestUnitJSON(t *testing.T) {
	t.Parallel()

	for _, u := range []Unit{MassOf(Ounces), VolumeOf(Cups), SpoonOf(SpoonTablespoons), OtherOf("small pack")} {
		data, err := json.Marshal(u)
		require.NoError(t, err)

		var back Unit
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, u, back)
	}

	data, err := json.Marshal(VolumeOf(Millilitres))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"volume","name":"ml"}`, string(data))

	var u Unit
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"weight","name":"g"}`), &u))
}
