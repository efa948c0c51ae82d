package navfacts

import (
	"navfacts/keys"

	"github.com/mpyw/mvvm"
)

func navigate(nav *mvvm.Navigator) {
	nav.NavigateToKey("remote")
	nav.NavigateToKey("local") // want "navigation key local is not declared by any view-model"
	mvvm.NavigateTo[*keys.RoutedViewModel](nav)
	mvvm.NavigateTo[*keys.RemoteViewModel](nav) // want `navigation target keys\.RemoteViewModel is not a routable view-model`
	mvvm.NavigateTo[*mvvm.ViewModelBase](nav)
}
