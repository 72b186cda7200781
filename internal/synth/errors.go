// Package synth implements the search driver and Synthesize() entry point
// of §4.6/§6. This file documents how the in-loop error kinds of §7 are
// handled; the fatal kinds (IncompatibleTarget, MissingRequiredOption) are
// declared as sentinels in internal/synerr and returned directly from
// Synthesize.
package synth

// In-loop error handling (§7 "Policy: fatal errors surface to the caller;
// all in-loop errors are recovered so a single bad child cannot halt a
// long-running search"):
//
//   - SolverFailure / WorkerCrash: surfaced per job as dispatcher.Result.Err
//     (a *dispatcher.SolverFailureError or *dispatcher.WorkerCrashError).
//     The reduction step logs a warning and drops the child; the loop
//     continues with whatever siblings did solve.
//   - CheckpointReadError: tryResume returns the error; Synthesize logs a
//     warning and falls back to building a fresh root, exactly as if no
//     checkpoint existed.
//   - CheckpointWriteError: the per-cycle checkpoint save logs a warning and
//     the loop continues; the write was best-effort.
