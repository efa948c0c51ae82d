package properties

import "github.com/mpyw/mvvm"

type PersonViewModel struct {
	mvvm.ViewModelBase

	//mvvm:observable
	firstName string // want "firstName should notify dependent property FullName"

	//mvvm:observable
	//mvvm:notify FullName
	lastName string

	//mvvm:observableProperty
	Email string // want "observable field Email must be unexported"

	age int
}

func (vm *PersonViewModel) FullName() string {
	return vm.firstName + " " + vm.lastName
}

func (vm *PersonViewModel) Age() int { return vm.age }

func (vm *PersonViewModel) SetAge(v int) { vm.age = v } // want "setter of property Age does not raise change notification"

type Settings struct{ theme string }

func (s *Settings) SetTheme(v string) { s.theme = v }
