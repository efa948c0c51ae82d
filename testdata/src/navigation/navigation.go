package navigation

import "github.com/mpyw/mvvm"

//mvvm:key settings
type SettingsViewModel struct{ mvvm.ViewModelBase }

//mvvm:key profile // want "view-model key profile is never navigated to"
type ProfileViewModel struct{ mvvm.ViewModelBase }

//mvvm:key home
type HomeViewModel struct{ mvvm.ViewModelBase }

//mvvm:key home // want "view-model key home is declared by both HomeViewModel and LandingViewModel"
type LandingViewModel struct{ mvvm.ViewModelBase }

type DetailViewModel struct{ mvvm.ViewModelBase }

type DetailView struct {
	mvvm.View[*DetailViewModel]
}

type OrphanViewModel struct{ mvvm.ViewModelBase }

func navigate(nav *mvvm.Navigator, dynamic string) {
	nav.NavigateToKey("settings")
	nav.NavigateToKey("home", "1")
	nav.NavigateToKey("missing") // want "navigation key missing is not declared by any view-model"
	nav.NavigateToKey(dynamic)
	mvvm.NavigateTo[*DetailViewModel](nav)
	mvvm.NavigateTo[OrphanViewModel](nav) // want "navigation target OrphanViewModel is not a routable view-model"
}
