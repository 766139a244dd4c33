// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the user-initiated operations of the dashboard.

  - Registry.Register: send the catalog to the contract
  - Pipeline.Submit: resolve the token, submit the vote
  - ResetWorkflow.Reset: clear the remote tallies

Each operation refreshes the tally synchronizer after it succeeds. Nothing
is retried. Service wires all of them to one tally.Synchronizer:

	svc := voting.NewService(voting.Dependencies{Catalog: cat, Contract: client})
	svc.Refresh(ctx)
	receipt, err := svc.Submit(ctx, "Alice", "alice.near")

# Errors

  - ErrValidation: unknown candidate or missing voter, no remote call made
  - contract.ErrRemoteCall: the contract rejected or could not be reached
*/
package voting
