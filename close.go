package nvram

import "context"

// Close saves the region if the save is armed and has not run yet.
// Later calls, and calls on a Manager that never armed, do nothing.
func (m *Manager[T]) Close() error {
	return m.CloseContext(context.Background())
}

// CloseContext is Close with a context for the store operation.
func (m *Manager[T]) CloseContext(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.save(ctx)
}
