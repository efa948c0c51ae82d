package keys

import "github.com/mpyw/mvvm"

//mvvm:key remote
type RemoteViewModel struct{ mvvm.ViewModelBase }

type RoutedViewModel struct{ mvvm.ViewModelBase }

type RoutedView struct {
	mvvm.View[*RoutedViewModel]
}
