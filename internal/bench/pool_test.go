package bench

import (
	"fmt"
	"sync/atomic"
	"testing"
)

func TestPool(t *testing.T) {
	var count atomic.Int32
	jobs := make([]job, 10)
	for i := range jobs {
		jobs[i] = func() error {
			count.Add(1)
			return nil
		}
	}
	errs := runPool(3, jobs)
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
	if count.Load() != 10 {
		t.Errorf("expected 10 jobs, got %d", count.Load())
	}
}

func TestPoolWithErrors(t *testing.T) {
	jobs := []job{
		func() error { return nil },
		func() error { return fmt.Errorf("fail") },
		func() error { return nil },
	}
	errs := runPool(2, jobs)
	if len(errs) != 1 {
		t.Errorf("expected 1 error, got %d", len(errs))
	}
}
