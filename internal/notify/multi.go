package notify

import (
	"errors"

	"tempo/internal/core"
)

// Multi fans a notification out to every sink, joining any errors.
type Multi []core.Notifier

func (m Multi) Notify(n core.Notification) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Notify(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
