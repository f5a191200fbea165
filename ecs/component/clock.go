package component

// Clock carries the elapsed time of the current tick.
type Clock struct {
	// Delta is seconds since the previous tick, never negative.
	Delta float64
	Frame uint64
}

var ClockComponent = NewComponent[Clock]()
