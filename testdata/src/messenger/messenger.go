package messenger

import "github.com/mpyw/mvvm"

type InboxViewModel struct { // want "InboxViewModel registers messenger recipients but never unregisters them"
	mvvm.ViewModelBase
	messenger *mvvm.Messenger
}

func (vm *InboxViewModel) OnInitialized() {
	vm.messenger.Register(vm, func(msg any) {})
}

type OutboxViewModel struct {
	mvvm.ViewModelBase
	messenger *mvvm.Messenger
}

func (vm *OutboxViewModel) OnInitialized() {
	vm.messenger.Register(vm, func(msg any) {})
}

func (vm *OutboxViewModel) Close() error {
	vm.messenger.UnregisterAll(vm)
	return nil
}

type ChatViewModel struct {
	mvvm.RecipientViewModelBase
}

func (vm *ChatViewModel) OnInitialized() {
	vm.Messenger.Register(vm, func(msg any) {})
}
