package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

/** @brief An integer point in pixel space. */
type Point struct {
	X, Y int
}

/** @brief An integer width/height pair in pixel space. */
type Size struct {
	W, H int
}

/**
 * @brief An axis-aligned integer rectangle. X/Y is the top-left corner,
 * with Y growing downward as in image space.
 */
type Rect struct {
	X, Y, W, H int
}
