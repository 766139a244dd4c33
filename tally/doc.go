// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally keeps a local copy of the remote vote counts.

# Refreshing

	sync := tally.New(cat.Names(), client, tally.Options{})
	res := sync.Refresh(ctx)

Refresh reads every candidate in parallel and waits for all reads to
settle. A failed read keeps that candidate's previous count; the other
reads still apply. The merged result replaces the snapshot only when at
least one count differs, and only then does the version advance.

Concurrent refreshes are allowed. Each one collects its own reads; the
merge into the shared snapshot happens under a single lock, so the last
merge wins and no candidate is ever half-updated.

# Observing Changes

	snap, version := sync.Current()
	snap, version, err := sync.WaitForChange(ctx, version)
	<-sync.Changes()

Snapshots are values: holding one never observes later changes.

# Background Refresh

	go sync.Run(ctx, 5*time.Second)
*/
package tally
