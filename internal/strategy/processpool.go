package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/logging"
	"github.com/agbru/stratbench/internal/workload"
)

// Launcher builds the (not yet started) command of one worker process.
type Launcher func() (*exec.Cmd, error)

// SelfLauncher re-executes the running binary in worker mode.
func SelfLauncher() (*exec.Cmd, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	cmd := exec.Command(exe)
	cmd.Env = append(os.Environ(), WorkerEnvVar+"=1")
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// ProcessPool runs the chunks on a fixed pool of ProcessWorkers child
// processes. Nothing is shared with the children beyond the task kind and
// chunk bounds sent with each job.
type ProcessPool struct {
	launch Launcher
	logger logging.Logger
}

// NewProcessPool creates a worker-process pool strategy.
func NewProcessPool(opts Options) *ProcessPool {
	opts = opts.withDefaults()
	return &ProcessPool{launch: opts.Launcher, logger: opts.Logger}
}

// Kind returns KindProcesses.
func (p *ProcessPool) Kind() Kind { return KindProcesses }

// Run spawns the pool, submits one job per chunk and waits for all of them.
// Spawn failures abort before any job is sent.
func (p *ProcessPool) Run(ctx context.Context, spec workload.Spec) error {
	n := spec.ProcessWorkers()
	workers, err := p.spawn(n)
	if err != nil {
		return err
	}

	chunks := workload.Partition(spec.Iterations(), n)
	jobs := enqueue(chunks)
	markSubmitted(ctx, len(chunks))

	var g errgroup.Group
	for _, w := range workers {
		g.Go(func() error {
			for j := range jobs {
				if err := w.do(j.index, spec.Task(), j.rng); err != nil {
					return fault(KindProcesses, j.index, err)
				}
			}
			return nil
		})
	}
	runErr := g.Wait()

	for i, w := range workers {
		if err := w.close(runErr != nil); err != nil && runErr == nil {
			runErr = fault(KindProcesses, i, err)
		}
	}
	return runErr
}

func (p *ProcessPool) spawn(n int) ([]*procWorker, error) {
	workers := make([]*procWorker, 0, n)
	for range n {
		w, err := p.start()
		if err != nil {
			for _, started := range workers {
				_ = started.close(true)
			}
			return nil, apperrors.ResourceExhaustionError{
				Strategy:  KindProcesses.String(),
				Requested: n,
				Started:   len(workers),
				Cause:     err,
			}
		}
		p.logger.Debug("worker process started",
			logging.String("strategy", KindProcesses.String()),
			logging.Int("pid", w.cmd.Process.Pid))
		workers = append(workers, w)
	}
	return workers, nil
}

func (p *ProcessPool) start() (*procWorker, error) {
	cmd, err := p.launch()
	if err != nil {
		return nil, err
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &procWorker{
		cmd:   cmd,
		stdin: stdin,
		enc:   json.NewEncoder(stdin),
		dec:   json.NewDecoder(stdout),
	}, nil
}

// procWorker is the parent-side handle of one child process.
type procWorker struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	enc   *json.Encoder
	dec   *json.Decoder
}

// do sends one job and blocks until the child acknowledges it.
func (w *procWorker) do(id int, kind workload.TaskKind, r workload.Range) error {
	req := jobRequest{ID: id, Task: kind.String(), Start: r.Start, End: r.End}
	if err := w.enc.Encode(req); err != nil {
		return fmt.Errorf("send job to pid %d: %w", w.cmd.Process.Pid, err)
	}

	var reply jobReply
	if err := w.dec.Decode(&reply); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("worker pid %d exited before acknowledging job %d: %w", w.cmd.Process.Pid, id, err)
	}
	if reply.ID != id {
		return fmt.Errorf("worker pid %d acknowledged job %d, want %d", w.cmd.Process.Pid, reply.ID, id)
	}
	if reply.Error != "" {
		return errors.New(reply.Error)
	}
	return nil
}

// close ends the child. A graceful close lets the child drain and exit on
// EOF; otherwise it is killed first.
func (w *procWorker) close(kill bool) error {
	_ = w.stdin.Close()
	if kill {
		_ = w.cmd.Process.Kill()
		_ = w.cmd.Wait()
		return nil
	}
	return w.cmd.Wait()
}
