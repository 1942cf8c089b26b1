package section_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/line-sections/section"
)

func TestNewDistance(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{name: "positive", n: 1},
		{name: "large", n: 100000},
		{name: "zero", n: 0, wantErr: true},
		{name: "negative", n: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := section.NewDistance(tt.n)
			if tt.wantErr {
				require.ErrorIs(t, err, section.ErrInvalidDistance)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, d.Int())
			assert.True(t, d.Valid())
		})
	}
}

func TestDistanceMinus(t *testing.T) {
	ten := dist(t, 10)

	got, err := ten.Minus(dist(t, 4))
	require.NoError(t, err)
	assert.Equal(t, 6, got.Int())

	_, err = ten.Minus(dist(t, 10))
	assert.ErrorIs(t, err, section.ErrInvalidDistance)

	_, err = ten.Minus(dist(t, 11))
	assert.ErrorIs(t, err, section.ErrInvalidDistance)
}

func TestDistancePlus(t *testing.T) {
	assert.Equal(t, 25, dist(t, 10).Plus(dist(t, 15)).Int())
}

func TestSectionComparisons(t *testing.T) {
	first := sec(t, gangnam, yeoksam, 10)
	second := sec(t, yeoksam, bangbae, 15)

	assert.True(t, first.HasUpStation(gangnam))
	assert.False(t, first.HasUpStation(yeoksam))
	assert.True(t, first.HasDownStation(yeoksam))
	assert.True(t, second.Follows(first))
	assert.False(t, first.Follows(second))
	assert.True(t, first.Precedes(second))
	assert.True(t, first.NoLongerThan(second))
	assert.True(t, first.NoLongerThan(first))
	assert.False(t, second.NoLongerThan(first))

	assert.Equal(t, 25, first.MergedDistance(second).Int())
	remain, err := second.RemainDistance(first)
	require.NoError(t, err)
	assert.Equal(t, 5, remain.Int())
	_, err = first.RemainDistance(second)
	assert.ErrorIs(t, err, section.ErrInvalidDistance)
}

func TestSectionChangeLine(t *testing.T) {
	owner := sec(t, gangnam, yeoksam, 10)
	owner.LineID = "line-9"
	derived := sec(t, yeoksam, sadang, 3)
	derived.ChangeLine(owner)
	assert.Equal(t, "line-9", derived.LineID)
}
