package underflipper

// ReversePortrait returns the rectangle that lines up with front on the other
// side of a portrait A4 sheet that is flipped along its long edge.
// flipOffset shifts the result vertically to compensate for printer skew.
func (l *Layout) ReversePortrait(front Rect, flipOffset float64) Rect {
	return Rect{
		l.ShortEdge - front.X1,
		front.Y0 - flipOffset,
		l.ShortEdge - front.X0,
		front.Y1 - flipOffset,
	}
}

// ReverseLandscape returns the rectangle that lines up with front on the other
// side of a landscape A4 page that is printed on portrait media.
// Content copied into the result must also be rotated by 180 degrees.
func (l *Layout) ReverseLandscape(front Rect, flipOffset float64) Rect {
	return Rect{
		front.X0 + flipOffset,
		l.ShortEdge - front.Y1,
		front.X1 + flipOffset,
		l.ShortEdge - front.Y0,
	}
}
