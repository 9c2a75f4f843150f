// Package effectuation defines the frames pushed onto a supervisor's context
// stack — steps, optional parts, dispensable parts, and described parts —
// along with the canonical text encoding consumed by the log post-processor.
package effectuation

import "fmt"

// StepID identifies a step by its cross-module file designation and function
// signature. Equality is structural over both fields, so two call sites that
// happen to construct the same (File, Signature) pair collide intentionally
// in the supervisor's dedup set.
type StepID struct {
	File      string
	Signature string
}

// New builds a StepID from a file designation and a function signature.
func New(file, signature string) StepID {
	return StepID{File: file, Signature: signature}
}

// String returns the canonical text form "signature@file".
func (s StepID) String() string {
	return fmt.Sprintf("%s@%s", s.Signature, s.File)
}
