package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutTopRightStacksDownward(t *testing.T) {
	positions := Layout(AnchorTopRight, 1920, 1080, 3)

	assert.Equal(t, []Position{
		{X: 1540, Y: 80},
		{X: 1540, Y: 190},
		{X: 1540, Y: 300},
	}, positions)
}

func TestLayoutBottomRightStacksUpward(t *testing.T) {
	positions := Layout(AnchorBottomRight, 1920, 1080, 2)

	assert.Equal(t, []Position{
		{X: 1540, Y: 930},
		{X: 1540, Y: 820},
	}, positions)
}

func TestLayoutTopLeftStacksDownward(t *testing.T) {
	positions := Layout(AnchorTopLeft, 1920, 1080, 2)

	assert.Equal(t, []Position{
		{X: 20, Y: 80},
		{X: 20, Y: 190},
	}, positions)
}

func TestLayoutZeroCount(t *testing.T) {
	assert.Nil(t, Layout(AnchorTopRight, 1920, 1080, 0))
}
