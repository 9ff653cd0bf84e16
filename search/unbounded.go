package search

// unbounded links an input and an output channel through an elastic
// in-memory buffer, so senders never block no matter how slowly the other
// side drains. Closing in flushes the buffer and then closes out. Both the
// work queue and the result sequence ride on this: walker and workers run
// fully decoupled from consumer speed, at the cost of unbounded buffer
// growth when nobody drains.
func unbounded[T any]() (chan<- T, <-chan T) {
	in := make(chan T)
	out := make(chan T)

	go func() {
		var buf []T
		for in != nil || len(buf) > 0 {
			var send chan T
			var next T
			if len(buf) > 0 {
				send = out
				next = buf[0]
			}

			select {
			case v, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				buf = append(buf, v)
			case send <- next:
				buf = buf[1:]
			}
		}
		close(out)
	}()

	return in, out
}
