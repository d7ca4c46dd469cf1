package binding

// CancelFunc stops a snapshot subscription. Calling it more than once
// is harmless.
type CancelFunc func()

// SnapshotSource is the plain producer capability: the binder asks for
// the current snapshot once
type SnapshotSource[S comparable, I any] interface {
	Pull() (Snapshot[S, I], error)
}

// SnapshotStream is the reactive producer capability: the producer
// pushes a fresh snapshot whenever its data changes. Subscribe returns
// a cancel function that stops the callbacks. The binder is agnostic to
// which capability fed it a snapshot.
type SnapshotStream[S comparable, I any] interface {
	Subscribe(onSnapshot func(Snapshot[S, I])) (CancelFunc, error)
}

// PullFunc adapts a function to the SnapshotSource interface
type PullFunc[S comparable, I any] func() (Snapshot[S, I], error)

func (f PullFunc[S, I]) Pull() (Snapshot[S, I], error) { return f() }

// SubscribeFunc adapts a function to the SnapshotStream interface
type SubscribeFunc[S comparable, I any] func(onSnapshot func(Snapshot[S, I])) (CancelFunc, error)

func (f SubscribeFunc[S, I]) Subscribe(onSnapshot func(Snapshot[S, I])) (CancelFunc, error) {
	return f(onSnapshot)
}
