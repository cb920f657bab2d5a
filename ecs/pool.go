package ecs

import (
	"golang.org/x/sync/errgroup"
)

// workerPool is a fixed set of goroutines pulling tasks from a bounded shared
// queue. Batch completion is tracked by the scheduler with a per-batch
// barrier; workers never block on each other.
type workerPool struct {
	tasks chan func()
	group errgroup.Group
}

func newWorkerPool(workers int) *workerPool {
	p := &workerPool{
		tasks: make(chan func(), workers*2),
	}
	for range workers {
		p.group.Go(func() error {
			for task := range p.tasks {
				task()
			}
			return nil
		})
	}
	return p
}

func (p *workerPool) submit(task func()) {
	p.tasks <- task
}

func (p *workerPool) close() error {
	close(p.tasks)
	return p.group.Wait()
}

// chunkRange splits [0, n) into at most `workers` contiguous chunks of at
// least minChunk slots. A zero-length range still yields one empty chunk so
// systems that only issue commands get to run.
func chunkRange(n, workers, minChunk int) []Range {
	if n == 0 {
		return []Range{{Start: 0, End: 0}}
	}

	size := (n + workers - 1) / workers
	if size < minChunk {
		size = minChunk
	}

	chunks := make([]Range, 0, workers)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		chunks = append(chunks, Range{Start: start, End: end})
	}
	return chunks
}
