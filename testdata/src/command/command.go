package command

import "github.com/mpyw/mvvm"

type EditorViewModel struct {
	mvvm.ViewModelBase
	text string
}

func (vm *EditorViewModel) Save() { // want "method Save should be a command"
	vm.text = ""
}

func (vm *EditorViewModel) Text() string { return vm.text }

//mvvm:relayCommand
func (vm *EditorViewModel) clear() { vm.text = "" }

//mvvm:nocommand
func (vm *EditorViewModel) Export() {}

func (vm *EditorViewModel) OnInitialized() { vm.clear() }
