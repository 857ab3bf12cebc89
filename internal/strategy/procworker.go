package strategy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/agbru/stratbench/internal/workload"
)

// WorkerEnvVar switches the binary into worker-process mode when set to "1".
const WorkerEnvVar = "STRATBENCH_WORKER"

// jobRequest is the only data crossing the process boundary: the task kind
// and the chunk bounds.
type jobRequest struct {
	ID    int    `json:"id"`
	Task  string `json:"task"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// jobReply acknowledges a chunk. Results are never sent back, only success
// or the fault message.
type jobReply struct {
	ID    int    `json:"id"`
	Error string `json:"error,omitempty"`
}

// IsWorkerProcess reports whether the current process was launched as a
// process-pool worker.
func IsWorkerProcess() bool {
	return os.Getenv(WorkerEnvVar) == "1"
}

// RunWorkerProcess serves jobs on stdin/stdout until stdin is closed and
// returns the process exit code.
func RunWorkerProcess() int {
	if err := ServeWorker(os.Stdin, os.Stdout, workload.Execute); err != nil {
		fmt.Fprintf(os.Stderr, "worker %d: %v\n", os.Getpid(), err)
		return 1
	}
	return 0
}

// ServeWorker reads newline-delimited JSON job requests from r, runs each one
// with task and writes one reply per request to w. It returns nil when r
// reaches EOF.
func ServeWorker(r io.Reader, w io.Writer, task TaskFunc) error {
	dec := json.NewDecoder(r)
	enc := json.NewEncoder(w)
	for {
		var req jobRequest
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode job: %w", err)
		}

		reply := jobReply{ID: req.ID}
		kind, err := workload.ParseTaskKind(req.Task)
		if err == nil {
			err = runChunk(task, kind, workload.Range{Start: req.Start, End: req.End})
		}
		if err != nil {
			reply.Error = err.Error()
		}
		if err := enc.Encode(reply); err != nil {
			return fmt.Errorf("encode reply: %w", err)
		}
	}
}
