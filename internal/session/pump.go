package session

import "io"

const chunkSize = 32 * 1024

// chunk is one Read result from a pump.
type chunk struct {
	data []byte
	err  error
}

// pump performs Reads on behalf of the event loop, one per request, so a
// source is never read ahead of what the loop consumes.
type pump struct {
	r    io.Reader
	req  chan struct{}
	out  chan chunk
	done chan struct{}
}

func newPump(r io.Reader, done chan struct{}) *pump {
	p := &pump{
		r:    r,
		req:  make(chan struct{}, 1),
		out:  make(chan chunk),
		done: done,
	}
	go p.run()
	return p
}

// request asks for the next chunk. It never blocks.
func (p *pump) request() {
	select {
	case p.req <- struct{}{}:
	default:
	}
}

func (p *pump) run() {
	buf := make([]byte, chunkSize)
	for {
		select {
		case <-p.done:
			return
		case <-p.req:
		}

		n, err := p.r.Read(buf)
		c := chunk{err: err}
		if n > 0 {
			c.data = append([]byte(nil), buf[:n]...)
		}

		select {
		case p.out <- c:
		case <-p.done:
			return
		}
		if err != nil {
			return
		}
	}
}
