package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMoveEmptyBoard(t *testing.T) {
	p, ok := SelectMove(NewBoard(13), White)
	require.True(t, ok)
	assert.Equal(t, Point{6, 6}, p)

	p, ok = SelectMove(NewBoard(8), White)
	require.True(t, ok)
	assert.Equal(t, Point{4, 4}, p)
}

func TestSelectMoveBlocksOpenThree(t *testing.T) {
	b := NewBoard(13)
	place(t, b, Black, Point{6, 4}, Point{6, 5}, Point{6, 6})
	place(t, b, White, Point{0, 0})
	p, ok := SelectMove(b, White)
	require.True(t, ok)
	// 两端同分，(6,7) 离中心更近
	assert.Equal(t, Point{6, 7}, p)
}

func TestSelectMoveBlockBeatsOwnOpenThree(t *testing.T) {
	b := NewBoard(13)
	place(t, b, Black, Point{6, 4}, Point{6, 5}, Point{6, 6})
	place(t, b, White, Point{2, 2}, Point{2, 3})

	// 白方自己做活三只有进攻分，低于堵黑方活三的防守分
	assert.Greater(t, Evaluate(b, 6, 7, White), Evaluate(b, 2, 4, White))
	p, ok := SelectMove(b, White)
	require.True(t, ok)
	assert.Equal(t, Point{6, 7}, p)
}

func TestSelectMovePrefersOwnFive(t *testing.T) {
	b := NewBoard(13)
	place(t, b, White, Point{2, 2}, Point{2, 3}, Point{2, 4}, Point{2, 5})
	place(t, b, Black, Point{6, 4}, Point{6, 5}, Point{6, 6}, Point{2, 1})
	p, ok := SelectMove(b, White)
	require.True(t, ok)
	assert.Equal(t, Point{2, 6}, p)
}

func TestSelectMoveFullBoard(t *testing.T) {
	b := NewBoard(4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s := Black
			if (r/2+c)%2 == 1 {
				s = White
			}
			require.NoError(t, b.Place(r, c, s))
		}
	}
	_, ok := SelectMove(b, White)
	assert.False(t, ok)
}
