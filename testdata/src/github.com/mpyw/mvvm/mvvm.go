// Package mvvm is a stub of the MVVM framework for analyzer tests.
package mvvm

// ObservableObject raises property change notifications.
type ObservableObject struct {
	handlers []func(name string)
}

// OnPropertyChanged notifies listeners that the named property changed.
func (o *ObservableObject) OnPropertyChanged(name string) {
	for _, h := range o.handlers {
		h(name)
	}
}

// SetProperty notifies listeners that the named property changed and reports
// whether a notification was raised.
func (o *ObservableObject) SetProperty(name string) bool {
	o.OnPropertyChanged(name)
	return true
}

// ViewModelBase is the base of every view-model.
type ViewModelBase struct {
	ObservableObject
}

func (vm *ViewModelBase) OnInitialized()      {}
func (vm *ViewModelBase) OnParametersSet()    {}
func (vm *ViewModelBase) NotifyStateChanged() {}

// Close releases the resources the view-model holds.
func (vm *ViewModelBase) Close() error { return nil }

// RecipientViewModelBase is a view-model that receives messenger messages.
type RecipientViewModelBase struct {
	ViewModelBase
	Messenger *Messenger
}

// View binds a component to its view-model.
type View[VM any] struct {
	ViewModel VM
}

// StateHasChanged re-renders the view.
func (v *View[VM]) StateHasChanged() {}

// Navigator moves between pages.
type Navigator struct{}

// NavigateToKey navigates to the view-model registered under key.
func (n *Navigator) NavigateToKey(key string, params ...string) {}

// NavigateToType navigates to the view of the given view-model value.
func (n *Navigator) NavigateToType(vm any, params ...string) {}

// NavigateTo navigates to the view of VM.
func NavigateTo[VM any](n *Navigator, params ...string) {}

// Messenger delivers messages between recipients.
type Messenger struct{}

func (m *Messenger) Register(recipient any, handler func(msg any)) {}
func (m *Messenger) Unregister(recipient any)                      {}
func (m *Messenger) UnregisterAll(recipient any)                   {}

// EventSource is a subscribable event.
type EventSource struct {
	Handlers []func()
}

// Subscribe adds h and returns a function removing it.
func (e *EventSource) Subscribe(h func()) func() {
	e.Handlers = append(e.Handlers, h)
	return func() {}
}
