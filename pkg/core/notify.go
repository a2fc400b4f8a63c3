// pkg/core/notify.go
package core

// ChangeNotifier is told about every mutation the orchestrator makes to an
// item. Implementations run on the orchestrator's goroutine.
type ChangeNotifier interface {
	ItemChanged(item *PackageItem)
}

// NotifierFunc adapts a function to ChangeNotifier.
type NotifierFunc func(item *PackageItem)

func (f NotifierFunc) ItemChanged(item *PackageItem) { f(item) }

// Notify calls n when it is non-nil.
func Notify(n ChangeNotifier, item *PackageItem) {
	if n != nil {
		n.ItemChanged(item)
	}
}
