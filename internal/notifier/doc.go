// Package notifier contains the reconciliation core: the message renderer,
// the channel state classifier, and the reconciler that maps (trigger,
// observed state) to gateway actions.
//
// The channel itself is the database. No state survives a restart; every
// reconciliation re-reads the channel, classifies what it sees, and
// converges it to the intended shape. Unexpected shapes (foreign messages,
// wrong counts) fold into the uninitialized state and are rebuilt from
// scratch, which makes the system self-healing after crashes or manual
// deletions.
package notifier
