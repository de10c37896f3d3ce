package board

// between[a][b] is zero unless a and b share a rank, file or diagonal; otherwise it holds the
// bitboard of the squares strictly between them (exclusive of both a and b). Used by mask
// computation (pin rays, slider check resolution).
var between [NumSquares][NumSquares]Bitboard

var rayDirections = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		r0, f0 := int(sq.Rank()), int(sq.File())

		for _, d := range rayDirections {
			var ray Bitboard
			r, f := r0+d[0], f0+d[1]
			for r >= 0 && r < 8 && f >= 0 && f < 8 {
				s := NewSquare(File(f), Rank(r))
				between[sq][s] = ray
				ray |= BitMask(s)
				r += d[0]
				f += d[1]
			}
		}
	}
}

// Between returns the bitboard of squares strictly between a and b along a shared rank, file
// or diagonal. Returns zero if a and b do not share one.
func Between(a, b Square) Bitboard {
	return between[a][b]
}
