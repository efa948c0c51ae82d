package staterefresh

import "github.com/mpyw/mvvm"

type ListViewModel struct {
	mvvm.ViewModelBase
}

type ListView struct {
	mvvm.View[*ListViewModel]
	rows []string
}

func (v *ListView) Render() {
	for range v.rows {
		v.StateHasChanged() // want "StateHasChanged called inside a loop"
	}
	v.StateHasChanged()
}

func (v *ListView) Deferred() {
	for range v.rows {
		go func() { v.StateHasChanged() }()
	}
}

//mvvm:nocommand
func (vm *ListViewModel) Reload() { // want "Reload calls state refresh 4 times"
	vm.NotifyStateChanged()
	vm.NotifyStateChanged()
	vm.NotifyStateChanged()
	vm.NotifyStateChanged()
}
