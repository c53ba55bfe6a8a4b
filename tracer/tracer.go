// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package tracer

import (
	"fmt"
	"sync"
)

var (
	mu            sync.Mutex
	traceMessages []string
)

// Log just adds a message to the trace log. Render cycles run on their
// own goroutines, so the log is guarded.
func Log(msg string) {
	mu.Lock()
	traceMessages = append(traceMessages, msg)
	mu.Unlock()
}

// Len reports how many messages have accumulated.
func Len() int {
	mu.Lock()
	defer mu.Unlock()
	return len(traceMessages)
}

// Flush prints the accumulated trace log and resets it.
func Flush() {
	mu.Lock()
	msgs := traceMessages
	traceMessages = nil
	mu.Unlock()
	for _, msg := range msgs {
		fmt.Println(msg)
	}
}
