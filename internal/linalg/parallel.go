package linalg

import (
	"runtime"
	"sync"
)

// parallelRows is the smallest operator (six qubits) split across workers.
const parallelRows = 64

var workers = runtime.NumCPU()

func mulRows(m Matrix, v, out []complex128, start, end int) {
	for i := start; i < end; i++ {
		var sum complex128
		for j, val := range m[i] {
			sum += val * v[j]
		}
		out[i] = sum
	}
}

// mulParallel splits the rows of m into one contiguous chunk per worker.
func mulParallel(m Matrix, v, out []complex128) {
	rows := len(m)
	chunkSize := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= rows {
			break
		}
		end := start + chunkSize
		if end > rows {
			end = rows
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			mulRows(m, v, out, start, end)
		}(start, end)
	}
	wg.Wait()
}
