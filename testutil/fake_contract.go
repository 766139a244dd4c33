// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/danielhkuo/tally-board/contract"
)

// FakeContract is a scriptable contract.Client. Counts and failures are set
// per candidate; every call is recorded.
type FakeContract struct {
	mu          sync.Mutex
	counts      map[string]uint64
	readErrs    map[string]error
	submitErr   error
	resetErr    error
	registerErr error

	// TallyHook, when set, runs before each TallyFor returns and may
	// replace its result.
	TallyHook func(ctx context.Context, candidate string, votes uint64, err error) (uint64, error)

	Submissions []contract.VoteSubmission
	Registered  [][2][]string

	TallyCalls    atomic.Int64
	SubmitCalls   atomic.Int64
	ResetCalls    atomic.Int64
	RegisterCalls atomic.Int64
}

func NewFakeContract() *FakeContract {
	return &FakeContract{
		counts:   make(map[string]uint64),
		readErrs: make(map[string]error),
	}
}

// SetCount sets the remote tally for candidate.
func (f *FakeContract) SetCount(candidate string, votes uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[candidate] = votes
}

// FailReads makes TallyFor(candidate) fail until cleared with a nil error.
func (f *FakeContract) FailReads(candidate string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.readErrs, candidate)
		return
	}
	f.readErrs[candidate] = err
}

func (f *FakeContract) FailSubmit(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitErr = err
}

func (f *FakeContract) FailReset(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetErr = err
}

func (f *FakeContract) FailRegister(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerErr = err
}

func (f *FakeContract) RegisterCandidates(ctx context.Context, names, tokens []string) error {
	f.RegisterCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return fmt.Errorf("%w: set_candidates: %w", contract.ErrRemoteCall, f.registerErr)
	}
	f.Registered = append(f.Registered, [2][]string{names, tokens})
	return nil
}

func (f *FakeContract) ResetTallies(ctx context.Context) error {
	f.ResetCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetErr != nil {
		return fmt.Errorf("%w: reset_votes: %w", contract.ErrRemoteCall, f.resetErr)
	}
	f.counts = make(map[string]uint64)
	return nil
}

// SubmitVote records vote and, unless failing, increments its candidate.
func (f *FakeContract) SubmitVote(ctx context.Context, vote contract.VoteSubmission) error {
	f.SubmitCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Submissions = append(f.Submissions, vote)
	if f.submitErr != nil {
		return fmt.Errorf("%w: vote_for_candidate: %w", contract.ErrRemoteCall, f.submitErr)
	}
	f.counts[vote.Candidate]++
	return nil
}

func (f *FakeContract) TallyFor(ctx context.Context, candidate string) (uint64, error) {
	f.TallyCalls.Add(1)
	f.mu.Lock()
	votes := f.counts[candidate]
	err := f.readErrs[candidate]
	hook := f.TallyHook
	f.mu.Unlock()

	if hook != nil {
		votes, err = hook(ctx, candidate, votes, err)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: total_votes_for: %w", contract.ErrRemoteCall, err)
	}
	return votes, nil
}

var _ contract.Client = (*FakeContract)(nil)
