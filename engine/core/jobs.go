package core

import (
	"fmt"
	"sync"
)

// JobTask is a unit of work run on a worker goroutine. Run must not touch
// the graphics context; OnComplete and OnFailure are delivered on the thread
// that calls Update.
type JobTask struct {
	Name       string
	Run        func() (interface{}, error)
	OnComplete func(result interface{})
	OnFailure  func(err error)
}

type jobResult struct {
	task   JobTask
	result interface{}
	err    error
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	// submitMutex keeps Shutdown from closing the queue under a Submit
	submitMutex sync.RWMutex
	closed      bool

	mutex    sync.Mutex
	finished []jobResult
	inFlight int
}

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, fmt.Errorf("negative job queue size %d", channelSize)
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}
	js.start()
	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				res := jobResult{task: job}
				res.result, res.err = js.run(job)

				js.mutex.Lock()
				js.finished = append(js.finished, res)
				js.mutex.Unlock()
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %q panicked: %v", job.Name, r)
		}
	}()
	return job.Run()
}

func (js *JobSystem) Workers() int {
	return js.numWorkers
}

// Pending is the number of submitted jobs whose callbacks have not been
// delivered yet.
func (js *JobSystem) Pending() int {
	js.mutex.Lock()
	defer js.mutex.Unlock()
	return js.inFlight
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	if jt.Run == nil {
		return fmt.Errorf("job %q has nothing to run", jt.Name)
	}
	js.submitMutex.RLock()
	defer js.submitMutex.RUnlock()
	if js.closed {
		return ErrJobSystemClosed
	}

	js.mutex.Lock()
	js.inFlight++
	js.mutex.Unlock()

	js.jobQueue <- jt
	return nil
}

/**
 * @brief Delivers the callbacks of every finished job. Should happen once an
 * update cycle. Returns how many jobs were delivered.
 */
func (js *JobSystem) Update() int {
	js.mutex.Lock()
	finished := js.finished
	js.finished = nil
	js.inFlight -= len(finished)
	js.mutex.Unlock()

	for _, res := range finished {
		if res.err != nil {
			LogError("job %q failed: %s", res.task.Name, res.err.Error())
			if res.task.OnFailure != nil {
				res.task.OnFailure(res.err)
			}
			continue
		}
		if res.task.OnComplete != nil {
			res.task.OnComplete(res.result)
		}
	}
	return len(finished)
}

/**
 * @brief Shuts the job system down. Queued jobs still run; their callbacks
 * are dropped.
 */
func (js *JobSystem) Shutdown() error {
	js.submitMutex.Lock()
	if js.closed {
		js.submitMutex.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.submitMutex.Unlock()

	js.wg.Wait()

	js.mutex.Lock()
	dropped := len(js.finished)
	js.finished = nil
	js.inFlight = 0
	js.mutex.Unlock()
	if dropped > 0 {
		LogDebug("job system: dropped %d undelivered results", dropped)
	}
	return nil
}
