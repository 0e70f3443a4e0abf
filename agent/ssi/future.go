package ssi

import (
	"sync"

	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/dto"
)

// Future is a findy.Channel result which is read only once. The first getter
// blocks until libindy has called back, after that the result is cached.
type Future struct {
	ch findy.Channel
	r  *dto.Result
	lo sync.Mutex
}

// NewFuture changes the existing findy.Channel to a Future.
func NewFuture(ch findy.Channel) *Future {
	return &Future{ch: ch}
}

// NewReadyFuture returns a Future which already holds the strings, e.g. when
// an object is loaded from a file instead of libindy.
func NewReadyFuture(s1, s2 string) *Future {
	return &Future{r: &dto.Result{Data: dto.Data{Str1: s1, Str2: s2}}}
}

// Result returns the libindy result and its error status.
func (f *Future) Result() (*dto.Result, error) {
	f.lo.Lock()
	defer f.lo.Unlock()

	if f.r == nil {
		if f.ch == nil {
			return &dto.Result{}, nil
		}
		r := <-f.ch
		f.r = &r
		f.ch = nil
	}
	return f.r, f.r.Err()
}

func (f *Future) Handle() (int, error) {
	r, err := f.Result()
	return r.Handle(), err
}

func (f *Future) Strs() (s1, s2, s3 string, err error) {
	r, err := f.Result()
	return r.Str1(), r.Str2(), r.Str3(), err
}

func (f *Future) Str1() (string, error) {
	s1, _, _, err := f.Strs()
	return s1, err
}

// Yes returns the boolean result, e.g. the proof verification.
func (f *Future) Yes() (bool, error) {
	r, err := f.Result()
	return r.Yes(), err
}
