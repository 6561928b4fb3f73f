package renderer

import (
	"fmt"
	"runtime"
	"sync"
)

// TileTask asks a worker to trace every sub-sample inside one tile
type TileTask struct {
	Tile    *Tile
	TaskID  int
	Buffers *FrameBuffers // tiles never overlap, so workers write without locking
}

// TileResult reports the counters of one traced tile
type TileResult struct {
	TaskID int
	Stats  TraceStats
	Error  error
}

// WorkerPool fans Phase 1 tiles out to a fixed set of goroutines
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker drains the task queue until it is closed
type Worker struct {
	ID          int
	tracer      *TileTracer
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool sizes both queues to hold every tile, so SubmitTask never
// blocks. numWorkers <= 0 uses every CPU.
func NewWorkerPool(tracer *TileTracer, numTiles, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, numTiles),
		resultQueue: make(chan TileResult, numTiles),
		numWorkers:  numWorkers,
	}

	// The tracer holds no per-ray state, so every worker shares it
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			tracer:      tracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start launches the workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue and returns once every worker has exited.
// Results already produced stay readable.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask queues a tile
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult blocks until a tile finishes; ok is false once the pool is stopped and drained
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- w.trace(task)
	}
}

// trace runs one task, reporting a panic as the task's error so the
// coordinator still receives a result for every tile
func (w *Worker) trace(task TileTask) (result TileResult) {
	result.TaskID = task.TaskID
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("worker %d: tile %d: %v", w.ID, task.Tile.ID, r)
		}
	}()

	result.Stats = w.tracer.TraceBounds(task.Tile.Bounds, task.Buffers)
	return result
}
