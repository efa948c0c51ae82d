package configured

import "github.com/mpyw/mvvm"

type PanelViewModel struct {
	mvvm.ViewModelBase
}

func (vm *PanelViewModel) Refresh() { // want "Refresh calls state refresh 2 times"
	vm.NotifyStateChanged()
	vm.NotifyStateChanged()
}
