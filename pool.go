package sqlmarkup

import (
	"sync"

	"github.com/valyala/bytebufferpool"
)

var expanderPool = sync.Pool{New: newExpander}

func newExpander() interface{} {
	return &expander{
		lists: make(map[string]string),
	}
}

func getExpander(c *Compiler) *expander {
	x := expanderPool.Get().(*expander)
	x.c = c
	x.counter = 1
	x.params = make(Params)
	x.buf = bytebufferpool.Get()
	return x
}

func putExpander(x *expander) {
	bytebufferpool.Put(x.buf)
	for k := range x.lists {
		delete(x.lists, k)
	}
	x.c = nil
	x.params = nil
	x.buf = nil
	x.depth = 0
	expanderPool.Put(x)
}
