package iclp

// runScheduler drains the agenda to a fixed point: pop a node, re-run its
// contractor against its current operand intervals, apply any narrowing
// (which trails the write and enqueues watchers), and stop when the
// agenda is empty.
//
// Budget: ops_left starts at Config.IterationLimit. Once exhausted, the
// round only ends early if the most recent narrowing failed the
// "significant narrowing" test — otherwise the budget is ignored and
// propagation continues rather than hard-capping at IterationLimit ops.
func (e *Engine) runScheduler() error {
	opsLeft := e.cfg.IterationLimit
	for {
		if opsLeft <= 0 && e.store.lastNarrowingWasSmall() {
			return nil
		}
		id, ok := e.store.dequeue()
		if !ok {
			return nil
		}

		n := e.store.node(id)
		if n.op == OpNone || n.persistent {
			continue
		}
		contractor, ok := opContractors[n.op]
		if !ok {
			continue
		}

		argIvs := make([]Interval, len(n.args))
		for i, a := range n.args {
			argIvs[i] = e.store.get(a)
		}
		resultIv := e.store.get(id)

		newResult, newArgs, persistent, err := contractor(resultIv, argIvs)
		opsLeft--
		if err != nil {
			return err
		}

		if _, err := e.store.narrow(id, newResult); err != nil {
			return err
		}
		for i, a := range n.args {
			if _, err := e.store.narrow(a, newArgs[i]); err != nil {
				return err
			}
			// The operand's own producing relation (if any) must also
			// re-examine itself against its freshly narrowed result: a
			// node is a watcher of its args, not of itself, so without
			// this explicit re-enqueue a backward narrowing pushed onto
			// an intermediate node would never propagate further
			// upstream through that node's own contractor.
			e.store.enqueue(a)
		}
		if persistent {
			e.store.markPersistent(id)
		}
	}
}
