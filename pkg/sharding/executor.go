// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sharding provides a rendezvous-hashed pool of single-goroutine
// workers. A FilterTree is not internally synchronised, so a demultiplexer
// serving concurrent producers must guard access per series; Executor
// gives every (measurement, field) key a consistent home worker so all
// samples for that key are processed strictly in arrival order by exactly
// one goroutine. Submit blocks its caller until the job has run, so this
// only avoids a lock keyed on the whole tree if each shard's jobs touch a
// disjoint subtree of state — callers sharing one FilterTree across
// shards must still shard the tree itself, one instance per shard.
package sharding

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-rendezvous"
)

// Job is one unit of work routed to a shard.
type Job func()

// Executor routes jobs to one of a fixed set of single-goroutine workers,
// chosen by rendezvous (highest random weight) hashing on a caller-supplied
// key. The same key always lands on the same worker as long as the shard
// count is unchanged, so per-key ordering is preserved without a
// per-key lock.
type Executor struct {
	workers   []chan Job
	indexOf   map[string]int
	rv        *rendezvous.Rendezvous
	wg        sync.WaitGroup
	closeOnce sync.Once
	done      chan struct{}
}

// NewExecutor starts shardCount worker goroutines, each draining its own
// buffered job channel in order. queueDepth bounds how many concurrent
// Submit calls against the same shard may be waiting to enqueue before an
// additional one blocks; every Submit call still blocks until its own job
// has run.
func NewExecutor(shardCount, queueDepth int) *Executor {
	if shardCount <= 0 {
		shardCount = 1
	}
	if queueDepth <= 0 {
		queueDepth = 1
	}

	names := make([]string, shardCount)
	e := &Executor{
		workers: make([]chan Job, shardCount),
		indexOf: make(map[string]int, shardCount),
		done:    make(chan struct{}),
	}
	for i := 0; i < shardCount; i++ {
		name := fmt.Sprintf("shard-%d", i)
		names[i] = name
		e.indexOf[name] = i
		e.workers[i] = make(chan Job, queueDepth)
	}
	e.rv = rendezvous.New(names, xxhash.Sum64String)

	e.wg.Add(shardCount)
	for i := 0; i < shardCount; i++ {
		go e.runWorker(e.workers[i])
	}
	return e
}

func (e *Executor) runWorker(jobs <-chan Job) {
	defer e.wg.Done()
	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return
			}
			job()
		case <-e.done:
			// Drain whatever is already queued before exiting so a
			// shutdown never silently drops accepted work.
			for {
				select {
				case job := <-jobs:
					job()
				default:
					return
				}
			}
		}
	}
}

// Submit routes job to the shard owning key, enqueues it there, and blocks
// until job has run to completion — bounded and synchronous, matching the
// "no suspension points" scheduling model every compressor operation
// follows. It also blocks earlier than that if the shard's queue is full.
func (e *Executor) Submit(key string, job Job) {
	done := make(chan struct{})
	e.workers[e.ShardFor(key)] <- func() {
		job()
		close(done)
	}
	<-done
}

// ShardFor returns the index of the worker that owns key. Two calls with
// the same key and an unchanged shard count always agree.
func (e *Executor) ShardFor(key string) int {
	return e.indexOf[e.rv.Lookup(key)]
}

// ShardCount returns the number of worker goroutines.
func (e *Executor) ShardCount() int {
	return len(e.workers)
}

// Close signals every worker to stop and waits for each one to run the
// jobs already queued on it and exit. It does not reject later Submit
// calls: a job submitted after Close never runs, and that Submit call
// does not return.
func (e *Executor) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
	})
	e.wg.Wait()
}
